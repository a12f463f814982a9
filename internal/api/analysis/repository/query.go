package analysisRepository

const (
	queryCreateSession = `
		INSERT INTO tracking_sessions (
			id,
			profile_id,
			operator_id,
			started_at
		) VALUES (
			:id,
			:profile_id,
			:operator_id,
			:started_at
		)
	`

	queryGetSessionByID = `
		SELECT
			id,
			profile_id,
			operator_id,
			archive_url,
			started_at,
			ended_at
		FROM tracking_sessions
		WHERE id = :id
	`

	queryEndSession = `
		UPDATE tracking_sessions
		SET
			archive_url = :archive_url,
			ended_at = COALESCE(ended_at, :ended_at)
		WHERE id = :id
	`

	queryCreateClickEvent = `
		INSERT INTO click_events (
			id,
			session_id,
			eye,
			frames,
			held_ms,
			frame_seq,
			created_at
		) VALUES (
			:id,
			:session_id,
			:eye,
			:frames,
			:held_ms,
			:frame_seq,
			:created_at
		)
	`

	queryGetEventsBySession = `
		SELECT
			id,
			session_id,
			eye,
			frames,
			held_ms,
			frame_seq,
			created_at
		FROM click_events
		WHERE session_id = :session_id
		ORDER BY frame_seq ASC
	`
)
