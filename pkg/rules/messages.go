package rules

import (
	"sync"

	"github.com/flosch/pongo2/v6"
)

// Message templates are compiled once and cached; a template that
// fails to compile or render falls back to its raw text so a bad
// message never breaks validation.

var (
	tplMu    sync.RWMutex
	tplCache = map[string]*pongo2.Template{}
)

func render(template string, ctx pongo2.Context) string {
	tpl, err := compiled(template)
	if err != nil {
		return template
	}
	out, err := tpl.Execute(ctx)
	if err != nil {
		return template
	}
	return out
}

func compiled(template string) (*pongo2.Template, error) {
	tplMu.RLock()
	if tpl, ok := tplCache[template]; ok {
		tplMu.RUnlock()
		return tpl, nil
	}
	tplMu.RUnlock()

	tplMu.Lock()
	defer tplMu.Unlock()

	if tpl, ok := tplCache[template]; ok {
		return tpl, nil
	}
	tpl, err := pongo2.FromString(template)
	if err != nil {
		return nil, err
	}
	tplCache[template] = tpl
	return tpl, nil
}
