package repository

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"gamevault/backend/internal/catalog"
	"gamevault/backend/internal/database"
)

var gameColumns = map[string]string{
	catalog.ColumnTitle:        "games.title",
	catalog.ColumnSummary:      "games.summary",
	catalog.ColumnPlatform:     "games.platform",
	catalog.ColumnCriticsScore: "games.critics_score",
	catalog.ColumnMyRating:     "games.my_rating",
}

var relationTables = map[string]string{
	catalog.RelationGenres:     "genres",
	catalog.RelationTags:       "tags",
	catalog.RelationDevelopers: "developers",
	catalog.RelationPublishers: "publishers",
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func likePattern(text string) string {
	return "%" + likeEscaper.Replace(catalog.Fold(text)) + "%"
}

// containsSQL matches col against a folded LIKE pattern. Postgres compares
// with ILIKE on the NFC form, SQLite through the registered fold function.
func containsSQL(dialect, col string) string {
	if dialect == "postgres" {
		return fmt.Sprintf(`NORMALIZE(%s, NFC) ILIKE ? ESCAPE '\'`, col)
	}
	return fmt.Sprintf(`%s(%s) LIKE ? ESCAPE '\'`, database.FoldFunction, col)
}

// applyPredicate adds one WHERE condition per clause.
func applyPredicate(db *gorm.DB, p catalog.Predicate) (*gorm.DB, error) {
	dialect := db.Dialector.Name()
	for _, c := range p.Clauses {
		sql, args, err := clauseSQL(dialect, c)
		if err != nil {
			return nil, err
		}
		db = db.Where(sql, args...)
	}
	return db, nil
}

func clauseSQL(dialect string, c catalog.Clause) (string, []any, error) {
	if c.Relation != "" {
		table, ok := relationTables[c.Relation]
		if !ok {
			return "", nil, fmt.Errorf("unknown relation %q", c.Relation)
		}
		sql := fmt.Sprintf(
			"EXISTS (SELECT 1 FROM %[1]s WHERE %[1]s.game_id = games.id AND %[2]s)",
			table, containsSQL(dialect, table+".name"),
		)
		return sql, []any{likePattern(c.Text)}, nil
	}

	columns := make([]string, 0, len(c.Columns))
	for _, name := range c.Columns {
		col, ok := gameColumns[name]
		if !ok {
			return "", nil, fmt.Errorf("unknown column %q", name)
		}
		columns = append(columns, col)
	}
	if len(columns) == 0 {
		return "", nil, fmt.Errorf("clause without columns")
	}

	switch c.Op {
	case catalog.OpContains:
		parts := make([]string, len(columns))
		args := make([]any, len(columns))
		pattern := likePattern(c.Text)
		for i, col := range columns {
			parts[i] = containsSQL(dialect, col)
			args[i] = pattern
		}
		return "(" + strings.Join(parts, " OR ") + ")", args, nil
	case catalog.OpGTE:
		return columns[0] + " >= ?", []any{c.Number}, nil
	case catalog.OpLTE:
		return columns[0] + " <= ?", []any{c.Number}, nil
	case catalog.OpNotNull:
		return columns[0] + " IS NOT NULL", nil, nil
	}
	return "", nil, fmt.Errorf("unknown operator %d", c.Op)
}
