package rdf

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// PrefixMap maps prefix labels (without the trailing colon) to namespace
// IRIs. It is used both when parsing prefixed names and when shrinking
// IRIs for Turtle output.
type PrefixMap map[string]string

// DefaultPrefixes returns the prefix map every invocation starts from.
func DefaultPrefixes() PrefixMap {
	return PrefixMap{
		"rdf":  RDFNS,
		"rdfs": RDFSNS,
		"owl":  OWLNS,
		"xsd":  XSDNS,
	}
}

// LoadPrefixes reads a YAML file mapping prefix labels to namespace IRIs
// and merges it over the defaults. User entries win on collision.
func LoadPrefixes(path string) (PrefixMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read prefixes: %w", err)
	}
	var user map[string]string
	if err := yaml.Unmarshal(data, &user); err != nil {
		return nil, fmt.Errorf("parse prefixes %s: %w", path, err)
	}
	pm := DefaultPrefixes()
	for label, ns := range user {
		pm[label] = ns
	}
	return pm, nil
}

// Expand resolves a prefixed name like "owl:imports" to a full IRI.
// Returns false if the prefix label is unknown.
func (pm PrefixMap) Expand(pname string) (string, bool) {
	label, local, ok := strings.Cut(pname, ":")
	if !ok {
		return "", false
	}
	ns, ok := pm[label]
	if !ok {
		return "", false
	}
	return ns + local, true
}

// Shrink rewrites an IRI as a prefixed name when a registered namespace
// is a proper prefix of it and the local part is a plain name. The
// longest matching namespace wins.
func (pm PrefixMap) Shrink(iri string) (string, bool) {
	best := ""
	bestNS := ""
	for label, ns := range pm {
		if strings.HasPrefix(iri, ns) && len(ns) > len(bestNS) {
			best = label
			bestNS = ns
		}
	}
	if bestNS == "" {
		return "", false
	}
	local := iri[len(bestNS):]
	if local == "" || strings.ContainsAny(local, "/#:?") {
		return "", false
	}
	return best + ":" + local, true
}

// Labels returns the prefix labels in sorted order.
func (pm PrefixMap) Labels() []string {
	labels := make([]string, 0, len(pm))
	for label := range pm {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}
