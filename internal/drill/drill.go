// Package drill translates a grid row plus an action definition and the
// hosting screen's ambient filters into a pre-filtered scenario URL, opened
// in the system browser. It is a pure read-and-compose step: neither the
// row nor the ambient snapshot is ever mutated.
package drill

import (
	"errors"
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
	"strings"

	"gridlens/internal/model"
	"gridlens/internal/util/logx"
)

var errInvalidAction = errors.New("drill: action has no target domain/key")

// Dispatcher builds and opens drill-down targets. BaseURL is the scenario
// host prefix from the catalog (e.g. "https://admin.example.com").
type Dispatcher struct {
	BaseURL string

	// Opener overrides how the final URL is launched; nil means the
	// system browser.
	Opener func(url string) error
}

// Compose builds the parameter map for a drill-down: ambient filters
// first, then every scalar row field (row values win on collision), then
// the action's key renames in order, then the autosubmit flag.
func Compose(ambient model.AmbientFilters, row model.Row, action model.Action) url.Values {
	params := url.Values{}
	for k, v := range ambient {
		params.Set(k, v)
	}
	for k, v := range row {
		if !model.IsScalar(v) {
			continue
		}
		params.Set(k, model.ParamValue(v))
	}
	for _, m := range action.Mappings {
		if !params.Has(m.Source) || m.Target == "" {
			continue
		}
		v := params.Get(m.Source)
		params.Del(m.Source)
		params.Set(m.Target, v)
	}
	params.Set("autosubmit", "true")
	return params
}

// TargetURL renders the full destination for a (row, action) pair.
func (d *Dispatcher) TargetURL(ambient model.AmbientFilters, row model.Row, action model.Action) (string, error) {
	if !action.Valid() {
		return "", errInvalidAction
	}
	params := Compose(ambient, row, action)
	base := strings.TrimRight(d.BaseURL, "/")
	return fmt.Sprintf("%s/%s/%s?%s", base,
		url.PathEscape(action.TargetDomain), url.PathEscape(action.TargetKey),
		params.Encode()), nil
}

// Dispatch opens the composed URL in a new browser context, leaving the
// grid state untouched. Malformed actions are logged and refused.
func (d *Dispatcher) Dispatch(ambient model.AmbientFilters, row model.Row, action model.Action) (string, error) {
	target, err := d.TargetURL(ambient, row, action)
	if err != nil {
		logx.Warnf("drill: refusing action %q: %v", action.Name, err)
		return "", err
	}
	open := d.Opener
	if open == nil {
		open = openBrowser
	}
	if err := open(target); err != nil {
		logx.Errorf("drill: open %s: %v", target, err)
		return target, err
	}
	logx.Infof("drill: %s -> %s", action.Name, target)
	return target, nil
}

func openBrowser(target string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", target)
	case "darwin":
		cmd = exec.Command("open", target)
	default:
		cmd = exec.Command("xdg-open", target)
	}
	return cmd.Start()
}
