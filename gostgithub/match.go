package gostgithub

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/hostapklok/flare-bypasser/models"
	"github.com/hostapklok/flare-bypasser/platform"
)

// MatchAsset picks the release asset for the given platform. The asset file
// name is split into delimiter-separated segments and both tokens must match
// a segment exactly, so an "arm64" asset never satisfies an "armv7" host.
// The first match in API order wins.
func MatchAsset(assets []models.Asset, p platform.Platform) (*models.Asset, error) {
	for i, a := range assets {
		segments := splitSegments(a.Name)
		if segments[p.OS] && segments[p.Arch] {
			return &assets[i], nil
		}
	}
	return nil, errors.Errorf("no release asset matches %s", p)
}

func splitSegments(name string) map[string]bool {
	segments := map[string]bool{}
	fields := strings.FieldsFunc(strings.ToLower(name), func(r rune) bool {
		return r == '-' || r == '_' || r == '.'
	})
	for _, f := range fields {
		segments[f] = true
	}
	return segments
}
