package cluster

import (
	"fmt"
	"time"

	"github.com/go-viper/mapstructure/v2"
)

// Profile describes how to reach one cluster management endpoint.
// Profiles are read from the "clusters" section of the config file:
//
//	clusters:
//	  prod-a:
//	    address: 10.0.0.10
//	    username: admin
//	    insecure: true
//	    timeout: 90s
type Profile struct {
	Name     string        `json:"-"`
	Address  string        `json:"address"`
	Username string        `json:"username"`
	Password string        `json:"password"`
	Insecure bool          `json:"insecure"`
	Timeout  time.Duration `json:"timeout"`
}

// DecodeSettings is a generic helper to unmarshal loosely typed settings
// (as returned by viper) into a strongly-typed struct using JSON tags.
// It uses weak typing to handle string-to-int/bool/duration conversions.
func DecodeSettings[T any](raw any) (*T, error) {
	var result T

	config := &mapstructure.DecoderConfig{
		Result:           &result,
		WeaklyTypedInput: true,
		TagName:          "json",
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
		),
	}

	decoder, err := mapstructure.NewDecoder(config)
	if err != nil {
		return nil, err
	}

	if err := decoder.Decode(raw); err != nil {
		return nil, err
	}

	return &result, nil
}

// DecodeProfiles turns the raw "clusters" config section into named profiles.
// A nil section yields an empty map.
func DecodeProfiles(raw any) (map[string]Profile, error) {
	if raw == nil {
		return map[string]Profile{}, nil
	}

	parsed, err := DecodeSettings[map[string]Profile](raw)
	if err != nil {
		return nil, fmt.Errorf("invalid clusters section: %w", err)
	}

	profiles := make(map[string]Profile, len(*parsed))
	for name, p := range *parsed {
		p.Name = name
		if p.Address == "" {
			p.Address = name
		}
		profiles[name] = p
	}
	return profiles, nil
}

// ResolveProfile returns the profile registered under name.
// Unknown names are treated as a bare management address.
func ResolveProfile(profiles map[string]Profile, name string) Profile {
	if p, ok := profiles[name]; ok {
		return p
	}
	return Profile{Name: name, Address: name}
}
