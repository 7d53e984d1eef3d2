package store

// SQL query constants. All SQL lives here; PostgresStore methods reference
// these constants.
const (
	queryGetCredentials = `
		SELECT user_id, access_token, refresh_token, expires_at, marketplace_domain
		FROM credentials
		WHERE user_id = $1`

	queryInsertCredentials = `
		INSERT INTO credentials (
			user_id, access_token, refresh_token, expires_at, marketplace_domain,
			created_at, updated_at
		) VALUES (
			@user_id, @access_token, @refresh_token, @expires_at, @marketplace_domain,
			now(), now()
		)`

	queryUpdateCredentialTokens = `
		UPDATE credentials SET
			access_token = $2,
			refresh_token = $3,
			expires_at = $4,
			updated_at = now()
		WHERE user_id = $1
		RETURNING user_id, access_token, refresh_token, expires_at, marketplace_domain`

	queryDeleteCredentials = `
		DELETE FROM credentials
		WHERE user_id = $1`
)
