package profileRepository

const (
	queryCreateProfile = `
		INSERT INTO profiles (
			id,
			name,
			direction_up,
			direction_down,
			direction_left,
			direction_right,
			blink_threshold,
			min_hold_ms,
			frame_interval_ms,
			created_by,
			created_at,
			updated_at
		) VALUES (
			:id,
			:name,
			:direction_up,
			:direction_down,
			:direction_left,
			:direction_right,
			:blink_threshold,
			:min_hold_ms,
			:frame_interval_ms,
			:created_by,
			:created_at,
			:updated_at
		)
	`

	queryGetProfileByID = `
		SELECT
			id,
			name,
			direction_up,
			direction_down,
			direction_left,
			direction_right,
			blink_threshold,
			min_hold_ms,
			frame_interval_ms,
			created_by,
			created_at,
			updated_at
		FROM profiles
		WHERE id = :id
	`

	queryGetAllProfiles = `
		SELECT
			id,
			name,
			direction_up,
			direction_down,
			direction_left,
			direction_right,
			blink_threshold,
			min_hold_ms,
			frame_interval_ms,
			created_by,
			created_at,
			updated_at
		FROM profiles
		ORDER BY created_at DESC
		LIMIT :limit OFFSET :offset
	`

	queryCountAllProfiles = `
		SELECT COUNT(*) FROM profiles
	`

	queryUpdateProfile = `
		UPDATE profiles
		SET
			name = :name,
			direction_up = :direction_up,
			direction_down = :direction_down,
			direction_left = :direction_left,
			direction_right = :direction_right,
			blink_threshold = :blink_threshold,
			min_hold_ms = :min_hold_ms,
			frame_interval_ms = :frame_interval_ms,
			updated_at = :updated_at
		WHERE id = :id
	`

	queryDeleteProfile = `
		DELETE FROM profiles
		WHERE id = :id
	`
)
