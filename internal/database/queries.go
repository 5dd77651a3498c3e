package database

import (
	"strconv"
	"strings"
)

// Dialect is also the database/sql driver name.
type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite3"
)

// Rebind rewrites ? placeholders into the dialect's form.
func (d Dialect) Rebind(query string) string {
	if d != Postgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

const submissionColumns = `row_id, user_id, author_name, team_name, dept_type, submitted_at,
	item_name, item_total, inspection_date, related_doc, sheet_name, sheet_url, photo_urls, pin_hash`

const (
	insertSubmission = `INSERT INTO submissions (` + submissionColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	selectSubmissions = `SELECT ` + submissionColumns + ` FROM submissions ORDER BY seq ASC`

	selectSubmissionsByUser = `SELECT ` + submissionColumns + ` FROM submissions
		WHERE user_id = ? ORDER BY seq ASC`

	selectSubmission = `SELECT ` + submissionColumns + ` FROM submissions WHERE row_id = ?`

	deleteSubmission = `DELETE FROM submissions WHERE row_id = ?`

	insertUser = `INSERT INTO users (id, name, team_name, pin_hash, created_at) VALUES (?, ?, ?, ?, ?)`

	selectUsersByName = `SELECT id, name, team_name, pin_hash, created_at FROM users
		WHERE name = ? ORDER BY seq ASC`
)
