package catalog

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jonwraymond/marketdev-mcp/schema"
	"github.com/jonwraymond/marketdev-mcp/tool"
)

// Parameter names shared by every search domain.
const (
	ParamQuery    = "query"
	ParamCount    = "count"
	ParamOffset   = "offset"
	ParamLocation = "location"
)

// Domain describes one searchable collection of the remote catalog.
type Domain struct {
	// Name is the collection name used in the endpoint path and in
	// failure messages, e.g. "experts".
	Name string

	// Noun is the singular display name used in log messages, e.g. "Expert".
	Noun string

	// ToolName is the name the tool is registered under.
	ToolName string

	Description string
	Schema      *schema.Schema
	Tags        []string
	Summary     string
	Notes       string
	Examples    []tool.Example
}

// Path returns the endpoint path relative to the catalog base URL.
func (d Domain) Path() string {
	return d.Name + "/search"
}

// Definition returns the tool declaration for the domain.
func (d Domain) Definition() tool.Definition {
	return tool.Definition{
		Name:        d.ToolName,
		Title:       cases.Title(language.English).String("search " + d.Name),
		Description: d.Description,
		Schema:      d.Schema,
		Tags:        d.Tags,
		Summary:     d.Summary,
		Notes:       d.Notes,
		Examples:    d.Examples,
	}
}

func queryField(examples string) schema.Field {
	return schema.String(ParamQuery, "Search term to find "+examples).Required().NonEmpty()
}

func countField() schema.Field {
	return schema.Integer(ParamCount, "Number of results (1-20, default 10)").Range(1, 20).Default(10)
}

func offsetField() schema.Field {
	return schema.Integer(ParamOffset, "Pagination offset (max 9, default 0)").Range(0, 9).Default(0)
}

func locationField() schema.Field {
	return schema.String(ParamLocation, "Filter by location (e.g., 'New York', 'Remote')").NonEmpty()
}

// Experts searches open source experts and contributors.
var Experts = Domain{
	Name:     "experts",
	Noun:     "Expert",
	ToolName: "search_experts",
	Description: "Searches for open source experts and contributors on market.dev. " +
		"Use this tool when looking for people with specific technical skills, project contributions, or open source experience. " +
		"Returns information about developers and their involvement in open source projects. " +
		"Supports pagination and filtering by location.",
	Schema: schema.New(
		queryField("experts (e.g., 'react', 'kubernetes', 'andrew')"),
		countField(),
		offsetField(),
		locationField(),
	),
	Tags:    []string{"experts", "developers", "contributors", "people", "open source", "search"},
	Summary: "Find open source experts by skill, project, or name",
	Notes:   "Results are returned as the catalog's JSON. count is 1-20 (default 10), offset 0-9 (default 0); location is only sent when given.",
	Examples: []tool.Example{
		{Title: "React experts", Args: map[string]any{"query": "react"}},
		{Title: "Remote Kubernetes experts", Args: map[string]any{"query": "kubernetes", "location": "Remote", "count": 5}},
	},
}

// Projects searches open source projects.
var Projects = Domain{
	Name:     "projects",
	Noun:     "Project",
	ToolName: "search_projects",
	Description: "Searches for open source projects on market.dev. " +
		"Use this tool when looking for specific libraries, frameworks, tools, or other open source repositories. " +
		"Returns information about projects including repositories, contributors, and related metadata. " +
		"Supports pagination for browsing through multiple results.",
	Schema: schema.New(
		queryField("projects (e.g., 'blockchain', 'AI', 'ipfs')"),
		countField(),
		offsetField(),
	),
	Tags:    []string{"projects", "repositories", "libraries", "frameworks", "open source", "search"},
	Summary: "Find open source projects and repositories",
	Notes:   "Results are returned as the catalog's JSON. count is 1-20 (default 10), offset 0-9 (default 0).",
	Examples: []tool.Example{
		{Title: "IPFS projects", Args: map[string]any{"query": "ipfs"}},
		{Title: "Second page of AI projects", Args: map[string]any{"query": "AI", "offset": 1}},
	},
}

// Domains returns every search domain in registration order.
func Domains() []Domain {
	return []Domain{Experts, Projects}
}
