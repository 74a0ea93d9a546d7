// Package templates is a minimal prompt template registry keyed
// "<group>.<name>", grounded on original_source's TemplateParser.get(group,
// name, substitutions) usage in NLPController.answer_rag_question.
package templates

import (
	"strings"
)

type Registry struct {
	primaryLang string
	defaultLang string
	templates   map[string]map[string]string // lang -> "group.name" -> template
}

func NewRegistry(primaryLang, defaultLang string) *Registry {
	r := &Registry{
		primaryLang: primaryLang,
		defaultLang: defaultLang,
		templates:   map[string]map[string]string{},
	}
	r.registerDefaults()
	return r
}

func (r *Registry) registerDefaults() {
	en := map[string]string{
		"rag.system_prompt":   "You are an assistant that answers questions using only the provided documents. If the answer isn't in the documents, say you don't know.",
		"rag.document_prompt": "## Document No. {doc_num}\n{chunk_text}",
		"rag.footer_prompt":   "Based only on the documents above, answer the following question:\n{query}",
	}
	r.templates["en"] = en
}

// Get looks up "<group>.<name>" in PRIMARY_LANG, falling back to
// DEFAULT_LANG, and substitutes any {key} placeholders found in vars.
func (r *Registry) Get(group, name string, vars map[string]string) string {
	key := group + "." + name

	tpl, ok := r.lookup(r.primaryLang, key)
	if !ok {
		tpl, ok = r.lookup(r.defaultLang, key)
	}
	if !ok {
		tpl, ok = r.lookup("en", key)
	}
	if !ok {
		return ""
	}

	for k, v := range vars {
		tpl = strings.ReplaceAll(tpl, "{"+k+"}", v)
	}
	return tpl
}

func (r *Registry) lookup(lang, key string) (string, bool) {
	byKey, ok := r.templates[lang]
	if !ok {
		return "", false
	}
	tpl, ok := byKey[key]
	return tpl, ok
}
