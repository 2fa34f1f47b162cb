package grants

import (
	"fmt"
	"strings"
	"time"
)

// ShowGrantRow is the interactive SHOW GRANTS row shape.
type ShowGrantRow struct {
	CreatedOn   string `mapstructure:"created_on"`
	Privilege   string `mapstructure:"privilege"`
	GrantedOn   string `mapstructure:"granted_on"`
	Name        string `mapstructure:"name"`
	GrantedTo   string `mapstructure:"granted_to"`
	GranteeName string `mapstructure:"grantee_name"`
	GrantedBy   string `mapstructure:"granted_by"`
	GrantOption string `mapstructure:"grant_option"`
}

// AccountUsageGrantRow is the historical export row shape from
// SNOWFLAKE.ACCOUNT_USAGE. Object names come pre-split and object types use
// spaces instead of underscores in this schema only.
type AccountUsageGrantRow struct {
	CreatedOn    string `mapstructure:"CREATED_ON"`
	Privilege    string `mapstructure:"PRIVILEGE"`
	GrantedOn    string `mapstructure:"GRANTED_ON"`
	Name         string `mapstructure:"NAME"`
	TableCatalog string `mapstructure:"TABLE_CATALOG"`
	TableSchema  string `mapstructure:"TABLE_SCHEMA"`
	GranteeName  string `mapstructure:"GRANTEE_NAME"`
	GrantedBy    string `mapstructure:"GRANTED_BY"`
	GrantOption  string `mapstructure:"GRANT_OPTION"`
	DeletedOn    string `mapstructure:"DELETED_ON"`
}

// RoleMembershipRow is the SHOW GRANTS OF ROLE row shape. GrantedTo is either
// ROLE or USER.
type RoleMembershipRow struct {
	CreatedOn   string `mapstructure:"created_on"`
	Role        string `mapstructure:"role"`
	GrantedTo   string `mapstructure:"granted_to"`
	GranteeName string `mapstructure:"grantee_name"`
	GrantedBy   string `mapstructure:"granted_by"`
	DeletedOn   string `mapstructure:"DELETED_ON"`
}

// FromShowGrant normalizes an interactive row into a canonical Grant.
func FromShowGrant(row ShowGrantRow) (g Grant, err error) {
	g.Privilege = row.Privilege
	g.ObjectType = row.GrantedOn
	g.GrantedTo = row.GranteeName
	g.GrantedBy = row.GrantedBy
	g.WithGrantOption = parseBool(row.GrantOption)
	g.CreatedAt, err = ParseTime(row.CreatedOn)
	if err != nil {
		return g, fmt.Errorf("created_on: %w", err)
	}
	g.SetObjectName(row.Name)
	return g, nil
}

// FromAccountUsage normalizes a historical export row.
//
// Soft-deleted rows are excluded: skip is true and the grant must be ignored.
func FromAccountUsage(row AccountUsageGrantRow) (g Grant, skip bool, err error) {
	if row.DeletedOn != "" {
		return g, true, nil
	}
	g.Privilege = row.Privilege
	g.ObjectType = strings.ReplaceAll(row.GrantedOn, " ", "_")
	g.GrantedTo = row.GranteeName
	g.GrantedBy = row.GrantedBy
	g.WithGrantOption = parseBool(row.GrantOption)
	g.CreatedAt, err = ParseTime(row.CreatedOn)
	if err != nil {
		return g, false, fmt.Errorf("CREATED_ON: %w", err)
	}
	g.SetObjectName(JoinObjectName(row.TableCatalog, row.TableSchema, row.Name))
	return g, false, nil
}

// FromRoleMembership normalizes a membership row into a USAGE grant.
//
// The object is the role being granted; the object type records whether the
// grantee is a role or a user. Graph edges are built from the ROLE ones,
// user assignments from the USER ones.
func FromRoleMembership(row RoleMembershipRow) (g Grant, skip bool, err error) {
	if row.DeletedOn != "" {
		return g, true, nil
	}
	g.Privilege = "USAGE"
	g.ObjectType = row.GrantedTo
	g.GrantedTo = row.GranteeName
	g.GrantedBy = row.GrantedBy
	g.CreatedAt, err = ParseTime(row.CreatedOn)
	if err != nil {
		return g, false, fmt.Errorf("created_on: %w", err)
	}
	g.SetObjectName(row.Role)
	return g, false, nil
}

func parseBool(value string) bool {
	return strings.EqualFold(value, "true")
}

// timeLayouts lists the timestamp shapes snowsql and the account usage
// export are known to produce.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999 -0700",
	"2006-01-02 15:04:05.999",
	"2006-01-02 15:04:05 -0700",
}

func ParseTime(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	for _, layout := range timeLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unknown timestamp format: %q", value)
}
