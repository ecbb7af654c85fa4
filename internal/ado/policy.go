package ado

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"ado-policy-report/internal/model"
)

// Policy type IDs whose display names differ from the names used in reports.
const (
	buildPolicyTypeID  = "0609b952-1397-4640-95ec-e00a01b2c241"
	statusPolicyTypeID = "cbdc66da-9728-4af8-aada-9a5a32e4a226"
)

var canonicalNames = map[string]string{
	buildPolicyTypeID:  "Build validation",
	statusPolicyTypeID: "Status check",
}

type policyConfiguration struct {
	ID         int             `json:"id"`
	IsEnabled  bool            `json:"isEnabled"`
	IsBlocking bool            `json:"isBlocking"`
	IsDeleted  bool            `json:"isDeleted"`
	Type       policyType      `json:"type"`
	Settings   json.RawMessage `json:"settings"`
}

type policyType struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
}

type policyScope struct {
	RepositoryID *string `json:"repositoryId"`
	RefName      string  `json:"refName"`
	MatchKind    string  `json:"matchKind"`
}

// appliesTo reports whether the configuration covers repoID. A scope without
// a repository applies to every repository of the project.
func (p policyConfiguration) appliesTo(repoID string) bool {
	var s struct {
		Scope []policyScope `json:"scope"`
	}
	if len(p.Settings) == 0 || json.Unmarshal(p.Settings, &s) != nil || len(s.Scope) == 0 {
		return true
	}
	for _, sc := range s.Scope {
		if sc.RepositoryID == nil || *sc.RepositoryID == "" || strings.EqualFold(*sc.RepositoryID, repoID) {
			return true
		}
	}
	return false
}

func (p policyConfiguration) toRawPolicy() model.RawPolicy {
	settings := flattenSettings(p.Settings)
	name := p.Type.DisplayName
	if n, ok := canonicalNames[strings.ToLower(p.Type.ID)]; ok {
		name = n
	}
	return model.RawPolicy{
		ID:          strconv.Itoa(p.ID),
		Type:        p.Type.ID,
		Name:        name,
		Description: describe(p.Type.ID, settings),
		IsEnabled:   p.IsEnabled,
		IsBlocking:  p.IsBlocking,
		Settings:    settings,
	}
}

// describe builds a one-line description from the settings the platform
// shows for the policy.
func describe(typeID string, s model.Settings) string {
	if strings.EqualFold(typeID, statusPolicyTypeID) && s.Lookup("statusName") != "" {
		if genre := s.Lookup("statusGenre"); genre != "" {
			return fmt.Sprintf("Status: %s (%s)", s.Lookup("statusName"), genre)
		}
		return "Status: " + s.Lookup("statusName")
	}
	for _, key := range []string{"displayName", "defaultDisplayName", "message"} {
		if v := s.Lookup(key); v != "" {
			return v
		}
	}
	return ""
}

// flattenSettings keeps the scalar top-level settings as strings. Objects,
// arrays and nulls are dropped. Malformed input yields nil.
func flattenSettings(raw json.RawMessage) model.Settings {
	if len(raw) == 0 {
		return nil
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return nil
	}
	out := model.Settings{}
	for k, v := range fields {
		var scalar any
		if err := json.Unmarshal(v, &scalar); err != nil {
			continue
		}
		switch t := scalar.(type) {
		case string:
			out[k] = t
		case bool:
			out[k] = strconv.FormatBool(t)
		case float64:
			out[k] = strconv.FormatFloat(t, 'f', -1, 64)
		}
	}
	return out
}
