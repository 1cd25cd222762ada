package webhook

import (
	"fmt"
	"sort"
)

const (
	ProfileLegacy  = "legacy"
	ProfileMinimal = "minimal"
	ProfileFull    = "full"
)

// FieldMapping builds one outbound key: the first present source wins,
// otherwise Default is used.
type FieldMapping struct {
	Dest    string
	Sources []string
	Default interface{}
}

// Profile describes one provider payload variant as data.
type Profile struct {
	Name           string
	RequiredFields []string
	Fields         []FieldMapping
	AuditRawBody   bool
}

func passthrough(key string, fallback interface{}) FieldMapping {
	return FieldMapping{Dest: key, Sources: []string{key}, Default: fallback}
}

func builtinProfiles() map[string]Profile {
	return map[string]Profile{
		ProfileLegacy: {
			Name: ProfileLegacy,
			Fields: []FieldMapping{
				passthrough("status", "unknown"),
				passthrough("idTransaction", ""),
				passthrough("typeTransaction", ""),
			},
		},
		ProfileMinimal: {
			Name:           ProfileMinimal,
			RequiredFields: []string{"typeTransaction", "statusTransaction", "idTransaction"},
			Fields: []FieldMapping{
				passthrough("typeTransaction", ""),
				{Dest: "statusTransaction", Sources: []string{"statusTransaction", "status"}, Default: "unknown"},
				passthrough("idTransaction", ""),
			},
			AuditRawBody: true,
		},
		ProfileFull: {
			Name:           ProfileFull,
			RequiredFields: []string{"typeTransaction", "statusTransaction", "idTransaction", "e2e", "paid_by", "paid_doc", "ispb"},
			// ispb is required on input but never forwarded.
			Fields: []FieldMapping{
				passthrough("typeTransaction", ""),
				{Dest: "statusTransaction", Sources: []string{"statusTransaction", "status"}, Default: ""},
				passthrough("idTransaction", ""),
				{Dest: "e2d", Sources: []string{"e2e"}, Default: ""},
				passthrough("paid_by", ""),
				passthrough("paid_doc", ""),
			},
			AuditRawBody: true,
		},
	}
}

func LookupProfile(name string) (Profile, error) {
	profiles := builtinProfiles()
	profile, ok := profiles[name]
	if !ok {
		return Profile{}, fmt.Errorf("unknown webhook profile %q, expected one of %v", name, ProfileNames())
	}
	return profile, nil
}

func ProfileNames() []string {
	var names []string
	for name := range builtinProfiles() {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
