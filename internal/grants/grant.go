package grants

import (
	"strings"
	"time"
)

// Grant holds one privilege assignment as inspected from Snowflake.
//
// Not to confuse with a role membership. A Grant references an object, a
// principal and a privilege. DBName, SchemaName and EntityName are derived
// from ObjectName, see SetObjectName().
//
// A Grant is immutable once normalized. Two grants are the same fact when
// their Key() are equal, whatever the source view they were seen from.
type Grant struct {
	Privilege       string
	ObjectType      string // DATABASE, SCHEMA, TABLE, ROLE, etc.
	ObjectName      string // Fully qualified, dotty parts quoted.
	DBName          string
	SchemaName      string
	EntityName      string
	GrantedTo       string // Role or user receiving the privilege.
	GrantedBy       string
	WithGrantOption bool
	CreatedAt       time.Time
	DeletedAt       time.Time // Zero unless from the account usage export.
}

// Key identifies a grant fact for dedup and diff.
func (g Grant) Key() string {
	return strings.Join([]string{
		g.Privilege, g.ObjectType, g.ObjectName, g.GrantedTo, g.GrantedBy,
	}, "#")
}

func (g Grant) String() string {
	b := strings.Builder{}
	b.WriteString(g.Privilege)
	b.WriteString(" ON ")
	b.WriteString(g.ObjectType)
	b.WriteByte(' ')
	b.WriteString(g.ObjectName)
	if g.GrantedTo != "" {
		b.WriteString(" TO ")
		b.WriteString(g.GrantedTo)
	}
	if g.WithGrantOption {
		b.WriteString(" WITH GRANT OPTION")
	}
	return b.String()
}

// SetObjectName parses name and derives DBName, SchemaName and EntityName
// according to the object type. ObjectName is re-serialized from the parts so
// that parsing is idempotent.
func (g *Grant) SetObjectName(name string) {
	parts := SplitObjectName(name)
	g.DBName = ""
	g.SchemaName = ""
	g.EntityName = ""
	switch g.ObjectType {
	case "DATABASE":
		g.DBName = parts[0]
	case "SCHEMA":
		if len(parts) >= 2 {
			g.DBName = parts[0]
			g.SchemaName = parts[1]
		} else {
			g.SchemaName = parts[0]
		}
	default:
		switch len(parts) {
		case 1:
			g.EntityName = parts[0]
		case 2:
			g.DBName = parts[0]
			g.EntityName = parts[1]
		default:
			g.DBName = parts[0]
			g.SchemaName = parts[1]
			g.EntityName = strings.Join(parts[2:], ".")
		}
	}
	g.ObjectName = JoinObjectName(g.DBName, g.SchemaName, g.EntityName)
}
