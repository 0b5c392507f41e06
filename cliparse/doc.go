/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3000)
  - DatabaseURL: SQLite file path or PostgreSQL connection string
  - DatabaseType: "sqlite" (default) or "postgres"
  - AdminUser: Admin username (default: "admin")
  - AdminPassword: Plaintext used only to seed the stored credential
    hash on first startup

# CLI Flags

	-p               Server port
	-d               Database path or URL
	-t               Database type
	-admin-user      Admin username
	-admin-password  Admin seed password

# Environment Variables

Flags fall back to environment variables:

	PORT           → -p
	DATABASE_PATH  → -d
	DATABASE_TYPE  → -t
	ADMIN_USERNAME → -admin-user
	ADMIN_PASSWORD → -admin-password

CLI flags take precedence over environment variables, and every value has
a development default, so the server starts with no configuration at all.

# Example

	// In main.go
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	dbConn, err := db.Open(cfg)
	// ...
	mux := router.NewRouter(dbConn, cfg, limiter)
*/
package cliparse
