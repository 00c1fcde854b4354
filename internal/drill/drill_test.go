package drill

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gridlens/internal/model"
)

func TestComposeRowOverridesAmbient(t *testing.T) {
	ambient := model.AmbientFilters{"region": "eu", "tier": "gold"}
	row := model.Row{"region": "us", "customerId": "A1"}
	params := Compose(ambient, row, model.Action{TargetDomain: "sales", TargetKey: "overview"})
	assert.Equal(t, "us", params.Get("region"))
	assert.Equal(t, "gold", params.Get("tier"))
	assert.Equal(t, "A1", params.Get("customerId"))
}

func TestComposeKeyMappings(t *testing.T) {
	row := model.Row{"custNum": "C42", "name": "Acme"}
	action := model.Action{
		TargetDomain: "billing",
		TargetKey:    "history",
		Mappings:     []model.KeyMapping{{Source: "custNum", Target: "customerId"}},
	}
	params := Compose(nil, row, action)
	assert.Equal(t, "C42", params.Get("customerId"))
	assert.False(t, params.Has("custNum"))
	// mapping a key that is absent is a no-op
	action.Mappings = append(action.Mappings, model.KeyMapping{Source: "ghost", Target: "x"})
	params = Compose(nil, row, action)
	assert.False(t, params.Has("x"))
}

func TestComposeSkipsNonScalarAndSetsAutosubmit(t *testing.T) {
	row := model.Row{"id": "1", "tags": []any{"a", "b"}, "active": true}
	params := Compose(nil, row, model.Action{TargetDomain: "d", TargetKey: "k"})
	assert.False(t, params.Has("tags"))
	assert.Equal(t, "true", params.Get("active"))
	assert.Equal(t, "true", params.Get("autosubmit"))
}

func TestComposeDoesNotMutateInputs(t *testing.T) {
	ambient := model.AmbientFilters{"region": "eu"}
	row := model.Row{"custNum": "C1"}
	Compose(ambient, row, model.Action{
		TargetDomain: "d", TargetKey: "k",
		Mappings: []model.KeyMapping{{Source: "custNum", Target: "customerId"}},
	})
	assert.Equal(t, model.AmbientFilters{"region": "eu"}, ambient)
	assert.Equal(t, model.Row{"custNum": "C1"}, row)
}

func TestTargetURL(t *testing.T) {
	d := &Dispatcher{BaseURL: "https://admin.example.com/"}
	row := model.Row{"customerId": "A1", "active": true}
	target, err := d.TargetURL(nil, row, model.Action{Name: "Sales overview", TargetDomain: "sales", TargetKey: "overview"})
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(target, "https://admin.example.com/sales/overview?"), target)
	u, err := url.Parse(target)
	require.NoError(t, err)
	q := u.Query()
	assert.Equal(t, "A1", q.Get("customerId"))
	assert.Equal(t, "true", q.Get("active"))
	assert.Equal(t, "true", q.Get("autosubmit"))
}

func TestDispatchRefusesInvalidAction(t *testing.T) {
	opened := false
	d := &Dispatcher{BaseURL: "https://x", Opener: func(string) error { opened = true; return nil }}
	_, err := d.Dispatch(nil, model.Row{"a": 1}, model.Action{Name: "broken"})
	require.Error(t, err)
	assert.False(t, opened, "invalid action reached the opener")
}

func TestDispatchUsesOpener(t *testing.T) {
	var got string
	d := &Dispatcher{BaseURL: "https://x", Opener: func(u string) error { got = u; return nil }}
	target, err := d.Dispatch(nil, model.Row{"id": "7"}, model.Action{Name: "go", TargetDomain: "d", TargetKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, target, got)
}

func TestTargetURLEscapesPathSegments(t *testing.T) {
	d := &Dispatcher{BaseURL: "https://x"}
	target, err := d.TargetURL(nil, model.Row{}, model.Action{Name: "a", TargetDomain: "my domain", TargetKey: "k/1"})
	require.NoError(t, err)
	assert.Contains(t, target, "/my%20domain/")
	assert.NotContains(t, target, "/k/1?")
}
