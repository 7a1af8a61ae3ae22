package report

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"

	"github.com/vbeffa/placeholders"
	"github.com/vbeffa/placeholders/internal/config"
	"github.com/vbeffa/placeholders/internal/templatefs"
)

func testResults(t *testing.T) []templatefs.Result {
	t.Helper()

	good := "SELECT *\nFROM users\nWHERE id = {id} AND org IN ({orgs+})"
	pt, err := placeholders.ParseQuery(good)
	require.NoError(t, err)

	bad := "SELECT *\nWHERE name = 'abc"
	_, perr := placeholders.ParseQuery(bad)
	require.Error(t, perr)

	return []templatefs.Result{
		{Path: "good.sql", Source: good, Template: pt},
		{Path: "bad.sql", Source: bad, Err: placeholders.NewErr(placeholders.ErrInvalidTemplate, "path", "bad.sql", perr)},
		{Path: "gone.sql", Err: errors.New("reading template gone.sql: file does not exist")},
	}
}

func TestBuild(t *testing.T) {
	reports := Build(testResults(t))
	require.Len(t, reports, 3)

	good := reports[0]
	assert.False(t, good.Failed())
	require.Len(t, good.Placeholders, 2)
	assert.Equal(t, PlaceholderReport{
		Text:   "{id}",
		Start:  31,
		End:    35,
		Line:   3,
		Column: 12,
		Ident:  placeholders.Named("id"),
		Named:  true,
	}, good.Placeholders[0])
	assert.Equal(t, placeholders.OneOrMany, good.Placeholders[1].Quantifier)

	bad := reports[1]
	require.True(t, bad.Failed())
	offset := 22
	assert.Equal(t, &ErrorReport{Offset: &offset, Line: 2, Column: 14, Reason: "unpaired delimiter: '''"}, bad.Error)

	gone := reports[2]
	require.True(t, gone.Failed())
	assert.Equal(t, 0, gone.Error.Line)
	assert.Nil(t, gone.Error.Offset)
	assert.Contains(t, gone.Error.Reason, "file does not exist")
}

func TestRender_Text(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, config.FormatText, Build(testResults(t))))

	assert.Equal(t, ""+
		"good.sql: 2 placeholder(s)\n"+
		"  3:12\t{id}\tnamed id\texactly-one\n"+
		"  3:29\t{orgs+}\tnamed orgs\tone-or-many\n"+
		"bad.sql:2:14: unpaired delimiter: '''\n"+
		"gone.sql: reading template gone.sql: file does not exist\n",
		buf.String())
}

func TestRender_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, config.FormatJSON, Build(testResults(t))))

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 3)

	first := decoded[0]["placeholders"].([]any)[0].(map[string]any)
	assert.Equal(t, "id", first["ident"])
	assert.Equal(t, "{id}", first["text"])
	assert.NotContains(t, first, "quantifier")

	second := decoded[0]["placeholders"].([]any)[1].(map[string]any)
	assert.Equal(t, "+", second["quantifier"])

	assert.Equal(t, "unpaired delimiter: '''", decoded[1]["error"].(map[string]any)["reason"])
}

func TestRender_ErrorAtStart(t *testing.T) {
	source := "'abc"
	_, err := placeholders.ParseQuery(source)
	require.Error(t, err)
	reports := []FileReport{FromError("x.sql", source, err)}

	var jsonBuf bytes.Buffer
	require.NoError(t, Render(&jsonBuf, config.FormatJSON, reports))
	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(jsonBuf.Bytes(), &decoded))
	require.Len(t, decoded, 1)
	errReport := decoded[0]["error"].(map[string]any)
	require.Contains(t, errReport, "offset")
	assert.Equal(t, float64(0), errReport["offset"])

	var yamlBuf bytes.Buffer
	require.NoError(t, Render(&yamlBuf, config.FormatYAML, reports))
	assert.Contains(t, yamlBuf.String(), "offset: 0")
}

func TestRender_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, config.FormatYAML, Build(testResults(t))[:1]))

	var decoded []struct {
		Path         string `yaml:"path"`
		Placeholders []struct {
			Ident      placeholders.Ident      `yaml:"ident"`
			Quantifier placeholders.Quantifier `yaml:"quantifier"`
		} `yaml:"placeholders"`
	}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "good.sql", decoded[0].Path)
	require.Len(t, decoded[0].Placeholders, 2)
	assert.Equal(t, placeholders.Named("orgs"), decoded[0].Placeholders[1].Ident)
	assert.Equal(t, placeholders.OneOrMany, decoded[0].Placeholders[1].Quantifier)
}

func TestRender_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := Render(&buf, "xml", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown format "xml"`)
}

func TestFromTemplate_Inline(t *testing.T) {
	pt, err := placeholders.ParseQuery("{} {}")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, config.FormatText, []FileReport{FromTemplate("", pt)}))
	assert.Equal(t, ""+
		"<query>: 2 placeholder(s)\n"+
		"  1:1\t{}\tpositional 1\texactly-one\n"+
		"  1:4\t{}\tpositional 2\texactly-one\n",
		buf.String())
}
