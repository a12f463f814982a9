package authRepository

const (
	queryCreateOperator = `
		INSERT INTO operators (
			id,
			email,
			username,
			api_key_hash,
			created_at,
			updated_at
		) VALUES (
			:id,
			:email,
			:username,
			:api_key_hash,
			:created_at,
			:updated_at
		)
	`

	queryGetByEmail = `
		SELECT
			id,
			email,
			username,
			api_key_hash,
			created_at,
			updated_at
		FROM operators
		WHERE email = :email
	`

	queryGetByID = `
		SELECT
			id,
			email,
			username,
			api_key_hash,
			created_at,
			updated_at
		FROM operators
		WHERE id = :id
	`
)
