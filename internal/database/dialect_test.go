package database

import "testing"

func TestPostgresPlaceholderRewriting(t *testing.T) {
	d := NewPostgresDialect()

	tests := []struct {
		name  string
		query string
		want  string
	}{
		{
			name:  "no placeholders",
			query: "SELECT id FROM users",
			want:  "SELECT id FROM users",
		},
		{
			name:  "single placeholder",
			query: "SELECT id FROM users WHERE email = ?",
			want:  "SELECT id FROM users WHERE email = $1",
		},
		{
			name:  "multiple placeholders",
			query: "INSERT INTO invitations (family_id, email, code) VALUES (?, ?, ?)",
			want:  "INSERT INTO invitations (family_id, email, code) VALUES ($1, $2, $3)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := d.RewriteQuery(tt.query); got != tt.want {
				t.Errorf("RewriteQuery() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSQLiteAndMySQLKeepPlaceholders(t *testing.T) {
	query := "SELECT id FROM users WHERE email = ? AND name = ?"

	if got := NewSQLiteDialect().RewriteQuery(query); got != query {
		t.Errorf("SQLite RewriteQuery() = %q, want unchanged", got)
	}
	if got := NewMySQLDialect().RewriteQuery(query); got != query {
		t.Errorf("MySQL RewriteQuery() = %q, want unchanged", got)
	}
}

func TestMySQLDSNParameters(t *testing.T) {
	d := NewMySQLDialect()

	tests := []struct {
		name string
		url  string
		want string
	}{
		{
			name: "bare dsn",
			url:  "user:pass@tcp(localhost:3306)/famlink",
			want: "user:pass@tcp(localhost:3306)/famlink?parseTime=true&multiStatements=true",
		},
		{
			name: "existing query string",
			url:  "user:pass@tcp(localhost:3306)/famlink?charset=utf8mb4",
			want: "user:pass@tcp(localhost:3306)/famlink?charset=utf8mb4&parseTime=true&multiStatements=true",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := d.DSN(DialectConfig{URL: tt.url}); got != tt.want {
				t.Errorf("DSN() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMigrationsSubdirs(t *testing.T) {
	if got := NewSQLiteDialect().MigrationsSubdir(); got != "sqlite" {
		t.Errorf("SQLite subdir = %q", got)
	}
	if got := NewPostgresDialect().MigrationsSubdir(); got != "postgres" {
		t.Errorf("Postgres subdir = %q", got)
	}
	if got := NewMySQLDialect().MigrationsSubdir(); got != "mysql" {
		t.Errorf("MySQL subdir = %q", got)
	}
}
