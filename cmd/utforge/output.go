package main

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/utkit/utforge/internal/domain"
	"github.com/utkit/utforge/internal/profile"
)

// orderedFields renders as a mapping that keeps insertion order in both
// JSON and YAML.
type orderedFields domain.Fields

func (o orderedFields) MarshalJSON() ([]byte, error) {
	return domain.Fields(o).MarshalJSON()
}

func (o orderedFields) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, f := range o {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: f.Key},
			&yaml.Node{Kind: yaml.ScalarNode, Value: f.Value, Style: yaml.DoubleQuotedStyle},
		)
	}
	return node, nil
}

type requestView struct {
	Method string        `json:"method" yaml:"method"`
	URL    string        `json:"url" yaml:"url"`
	Header orderedFields `json:"header" yaml:"header"`
	Form   orderedFields `json:"form,omitempty" yaml:"form,omitempty"`
	Body   string        `json:"body,omitempty" yaml:"body,omitempty"`
}

func newRequestView(req *domain.Request) requestView {
	return requestView{
		Method: req.Method,
		URL:    req.FullURL(),
		Header: orderedFields(req.Header),
		Form:   orderedFields(req.Form),
		Body:   string(req.Body),
	}
}

type profileView struct {
	Persona   string        `json:"persona" yaml:"persona"`
	Mandatory orderedFields `json:"mandatory" yaml:"mandatory"`
	Defaults  orderedFields `json:"defaults" yaml:"defaults"`
}

type profilesView struct {
	Profiles []profileView `json:"profiles" yaml:"profiles"`
	Protocol orderedFields `json:"protocol" yaml:"protocol"`
	Hosts    orderedFields `json:"hosts" yaml:"hosts"`
}

func rulesView(rules []profile.Rule) orderedFields {
	out := make(orderedFields, 0, len(rules))
	for _, r := range rules {
		out = append(out, domain.Field{Key: r.Name, Value: r.Source})
	}
	return out
}

func newProfilesView() (profilesView, error) {
	var v profilesView
	for _, persona := range profile.Personas() {
		p, err := profile.For(persona)
		if err != nil {
			return v, err
		}
		v.Profiles = append(v.Profiles, profileView{
			Persona:   persona.String(),
			Mandatory: rulesView(p.Mandatory),
			Defaults:  rulesView(p.Defaults),
		})
	}
	v.Protocol = rulesView(profile.Protocol())
	for _, platform := range profile.Platforms() {
		host, err := profile.BaseHost(platform)
		if err != nil {
			return v, err
		}
		v.Hosts = append(v.Hosts, domain.Field{Key: platform.String(), Value: host})
	}
	return v, nil
}

// render writes v to w as yaml or json.
func render(w io.Writer, format string, v interface{}) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml", "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unknown output format %q", format)
}
