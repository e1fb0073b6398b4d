package client

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"

	"github.com/fivetwenty-io/qtest/internal/constants"
	"github.com/fivetwenty-io/qtest/pkg/qtest"
	"github.com/jtacoma/uritemplates"
)

var (
	hostTemplate         = mustParse(constants.HostTemplate)
	projectsTemplate     = mustParse(constants.ProjectsTemplate)
	projectUsersTemplate = mustParse(constants.ProjectUsersTemplate)
	releasesTemplate     = mustParse(constants.ReleasesTemplate)
	testCyclesTemplate   = mustParse(constants.TestCyclesTemplate)
	usersTemplate        = mustParse(constants.UsersTemplate)
)

func mustParse(template string) *uritemplates.UriTemplate {
	tmpl, err := uritemplates.Parse(template)
	if err != nil {
		panic(fmt.Sprintf("parsing URI template %q: %v", template, err))
	}

	return tmpl
}

func expand(tmpl *uritemplates.UriTemplate, vars map[string]interface{}) (string, error) {
	expanded, err := tmpl.Expand(vars)
	if err != nil {
		return "", fmt.Errorf("expanding URI template: %w", err)
	}

	return expanded, nil
}

func formatID(value int64) string {
	return strconv.FormatInt(value, 10)
}

// HostURL returns the base URL of a hosted qTest Manager tenant.
func HostURL(subdomain string) (string, error) {
	return expand(hostTemplate, map[string]interface{}{"subdomain": subdomain})
}

// TenantName returns the client ID sent with the password grant: the
// subdomain when set, otherwise the first label of the base URL's host name.
// IP addresses and unparsable URLs give an empty name.
func TenantName(subdomain, baseURL string) string {
	if subdomain != "" {
		return subdomain
	}

	parsed, err := url.Parse(baseURL)
	if err != nil {
		return ""
	}

	host := parsed.Hostname()
	if host == "" || net.ParseIP(host) != nil {
		return ""
	}

	label, _, _ := strings.Cut(host, ".")

	return label
}

func projectsPath() (string, error) {
	return expand(projectsTemplate, map[string]interface{}{})
}

func projectPath(projectID int64) (string, error) {
	return expand(projectsTemplate, map[string]interface{}{"projectId": formatID(projectID)})
}

func projectUsersPath(projectID int64) (string, error) {
	return expand(projectUsersTemplate, map[string]interface{}{"projectId": formatID(projectID)})
}

func releasesPath(projectID int64) (string, error) {
	return expand(releasesTemplate, map[string]interface{}{"projectId": formatID(projectID)})
}

func releasePath(projectID, releaseID int64) (string, error) {
	return expand(releasesTemplate, map[string]interface{}{
		"projectId": formatID(projectID),
		"releaseId": formatID(releaseID),
	})
}

func testCyclesPath(projectID int64) (string, error) {
	return expand(testCyclesTemplate, map[string]interface{}{"projectId": formatID(projectID)})
}

func testCyclePath(projectID, testCycleID int64) (string, error) {
	return expand(testCyclesTemplate, map[string]interface{}{
		"projectId":   formatID(projectID),
		"testCycleId": formatID(testCycleID),
	})
}

func testCycleCreatePath(projectID int64, parentType qtest.TestCycleParent, parentID int64) (string, error) {
	return expand(testCyclesTemplate, map[string]interface{}{
		"projectId":  formatID(projectID),
		"parentType": parentType.String(),
		"parentId":   formatID(parentID),
	})
}

func userPath(userID int64) (string, error) {
	return expand(usersTemplate, map[string]interface{}{"userId": formatID(userID)})
}
