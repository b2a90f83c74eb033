package postgres

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"

	"repono/internal/domain"
)

func TestVisibilityClause_Admin(t *testing.T) {
	var args []interface{}
	clause := visibilityClause("c", domain.VisibilityFilter{Admin: true}, &args)

	assert.Equal(t, "TRUE", clause)
	assert.Empty(t, args)
}

func TestVisibilityClause_Anonymous(t *testing.T) {
	var args []interface{}
	filter := domain.VisibilityFilter{Groups: []string{domain.GroupPublic}}
	clause := visibilityClause("c", filter, &args)

	assert.Contains(t, clause, "c.visibility = 'open'")
	assert.NotContains(t, clause, "authenticated")
	assert.Contains(t, clause, "g.agent_type = 'group'")
	assert.Equal(t, []interface{}{domain.GroupPublic}, args)
}

func TestVisibilityClause_SignedIn(t *testing.T) {
	var args []interface{}
	filter := domain.VisibilityFilter{
		Registered: true,
		Email:      "user@test.org",
		Groups:     []string{domain.GroupPublic, domain.GroupRegistered},
	}
	clause := visibilityClause("w", filter, &args)

	assert.Contains(t, clause, "w.visibility = 'open'")
	assert.Contains(t, clause, "w.visibility = 'authenticated'")
	assert.Contains(t, clause, "g.agent_type = 'user'")
	assert.Contains(t, clause, "g.agent IN (?,?)")
	assert.Equal(t, []interface{}{"user@test.org", domain.GroupPublic, domain.GroupRegistered}, args)
}

func TestSplitCSV(t *testing.T) {
	assert.Nil(t, splitCSV(sql.NullString{}))
	assert.Nil(t, splitCSV(sql.NullString{String: "", Valid: true}))
	assert.Equal(t, []string{"a", "b"}, splitCSV(sql.NullString{String: "a, b", Valid: true}))
	assert.Equal(t, []string{"a"}, splitCSV(sql.NullString{String: "a,,", Valid: true}))
}
