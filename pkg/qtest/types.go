package qtest

import (
	"time"
)

// Link represents a hypermedia link attached to a qTest resource.
type Link struct {
	Rel  string `json:"rel"  yaml:"rel"`
	Href string `json:"href" yaml:"href"`
}

// Project represents a qTest project.
type Project struct {
	ID                    int64      `json:"id"                                 yaml:"id"`
	Name                  string     `json:"name"                               yaml:"name"`
	Description           string     `json:"description,omitempty"              yaml:"description,omitempty"`
	StatusID              int64      `json:"status_id,omitempty"                yaml:"status_id,omitempty"`
	StartDate             *time.Time `json:"start_date,omitempty"               yaml:"start_date,omitempty"`
	EndDate               *time.Time `json:"end_date,omitempty"                 yaml:"end_date,omitempty"`
	Sample                bool       `json:"sample"                             yaml:"sample"`
	Automation            bool       `json:"automation"                         yaml:"automation"`
	XExplorerAccessLevel  int        `json:"x_explorer_access_level,omitempty"  yaml:"x_explorer_access_level,omitempty"`
	DateFormat            string     `json:"date_format,omitempty"              yaml:"date_format,omitempty"`
	TemplateID            int64      `json:"template_id,omitempty"              yaml:"template_id,omitempty"`
	UUID                  string     `json:"uuid,omitempty"                     yaml:"uuid,omitempty"`
	DefectTrackingSystems []string   `json:"defect_tracking_systems,omitempty"  yaml:"defect_tracking_systems,omitempty"`
	Links                 []Link     `json:"links,omitempty"                    yaml:"links,omitempty"`
}

// Release represents a release inside a qTest project.
type Release struct {
	ID               int64      `json:"id"                           yaml:"id"`
	Name             string     `json:"name"                         yaml:"name"`
	PID              string     `json:"pid,omitempty"                yaml:"pid,omitempty"`
	Description      string     `json:"description,omitempty"        yaml:"description,omitempty"`
	Note             string     `json:"note,omitempty"               yaml:"note,omitempty"`
	Order            int        `json:"order,omitempty"              yaml:"order,omitempty"`
	StartDate        *time.Time `json:"start_date,omitempty"         yaml:"start_date,omitempty"`
	EndDate          *time.Time `json:"end_date,omitempty"           yaml:"end_date,omitempty"`
	CreatedDate      *time.Time `json:"created_date,omitempty"       yaml:"created_date,omitempty"`
	LastModifiedDate *time.Time `json:"last_modified_date,omitempty" yaml:"last_modified_date,omitempty"`
	WebURL           string     `json:"web_url,omitempty"            yaml:"web_url,omitempty"`
	Links            []Link     `json:"links,omitempty"              yaml:"links,omitempty"`
}

// TestCycle represents a test cycle inside a qTest project.
type TestCycle struct {
	ID               int64      `json:"id"                           yaml:"id"`
	Name             string     `json:"name"                         yaml:"name"`
	PID              string     `json:"pid,omitempty"                yaml:"pid,omitempty"`
	Description      string     `json:"description,omitempty"        yaml:"description,omitempty"`
	Order            int        `json:"order,omitempty"              yaml:"order,omitempty"`
	TargetReleaseID  int64      `json:"target_release_id,omitempty"  yaml:"target_release_id,omitempty"`
	TargetBuildID    int64      `json:"target_build_id,omitempty"    yaml:"target_build_id,omitempty"`
	CreatedDate      *time.Time `json:"created_date,omitempty"       yaml:"created_date,omitempty"`
	LastModifiedDate *time.Time `json:"last_modified_date,omitempty" yaml:"last_modified_date,omitempty"`
	WebURL           string     `json:"web_url,omitempty"            yaml:"web_url,omitempty"`
	Links            []Link     `json:"links,omitempty"              yaml:"links,omitempty"`
}

// User represents a qTest user account.
type User struct {
	ID           int64  `json:"id"                      yaml:"id"`
	Username     string `json:"username"                yaml:"username"`
	Email        string `json:"email,omitempty"         yaml:"email,omitempty"`
	FirstName    string `json:"first_name,omitempty"    yaml:"first_name,omitempty"`
	LastName     string `json:"last_name,omitempty"     yaml:"last_name,omitempty"`
	Status       int    `json:"status,omitempty"        yaml:"status,omitempty"`
	Avatar       string `json:"avatar,omitempty"        yaml:"avatar,omitempty"`
	LDAPUsername string `json:"ldap_username,omitempty" yaml:"ldap_username,omitempty"`
	ExternalID   string `json:"external_id,omitempty"   yaml:"external_id,omitempty"`
	Links        []Link `json:"links,omitempty"         yaml:"links,omitempty"`
}

// TestCycleParent identifies the container a new test cycle is created under.
type TestCycleParent string

// Test cycle parent containers.
const (
	TestCycleParentRoot      TestCycleParent = "ROOT"
	TestCycleParentRelease   TestCycleParent = "release"
	TestCycleParentTestCycle TestCycleParent = "test-cycle"
)

// String returns the wire value of the parent tag.
func (p TestCycleParent) String() string {
	return string(p)
}

// Valid reports whether p is one of the known parent containers.
func (p TestCycleParent) Valid() bool {
	switch p {
	case TestCycleParentRoot, TestCycleParentRelease, TestCycleParentTestCycle:
		return true
	default:
		return false
	}
}

// ProjectCreateRequest represents a request to create a project.
// Description defaults to the empty string. The start date is stamped by the client.
type ProjectCreateRequest struct {
	Name        string `json:"name"        validate:"required"`
	Description string `json:"description"`
}

// ReleaseCreateRequest represents a request to create a release.
type ReleaseCreateRequest struct {
	Name string `json:"name" validate:"required"`
}

// TestCycleCreateRequest represents a request to create a test cycle.
//
// ParentType defaults to TestCycleParentRoot and ParentID to 0, which places the
// cycle at the project root.
type TestCycleCreateRequest struct {
	Name       string          `json:"name"   validate:"required"`
	ParentType TestCycleParent `json:"-"`
	ParentID   int64           `json:"-"      validate:"gte=0"`
}

// SessionInfo is the public view of the session a client authenticated with.
// Empty fields were absent (or the literal "null") in the token response.
type SessionInfo struct {
	TokenType    string   `json:"token_type,omitempty"    yaml:"token_type,omitempty"`
	AccessToken  string   `json:"access_token,omitempty"  yaml:"access_token,omitempty"`
	RefreshToken string   `json:"refresh_token,omitempty" yaml:"refresh_token,omitempty"`
	Scope        []string `json:"scope,omitempty"         yaml:"scope,omitempty"`
	Agent        string   `json:"agent,omitempty"         yaml:"agent,omitempty"`
}
