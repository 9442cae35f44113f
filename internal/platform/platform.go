package platform

import (
	"github.com/plurcast/plurcast/internal/errors"
)

// Platform 是受支持的发布平台。
type Platform string

const (
	Nostr    Platform = "nostr"
	Mastodon Platform = "mastodon"
	Bluesky  Platform = "bluesky"
	SSB      Platform = "ssb"
)

// servicePrefix 是 keyring service 的统一前缀。
const servicePrefix = "plurcast."

// All 返回全部受支持平台（顺序稳定）。
func All() []Platform {
	return []Platform{Nostr, Mastodon, Bluesky, SSB}
}

// Parse 解析平台名；未知平台返回 PLUR_PLATFORM_UNKNOWN（exit 3）。
func Parse(s string) (Platform, *errors.PlurError) {
	p := Platform(s)
	switch p {
	case Nostr, Mastodon, Bluesky, SSB:
		return p, nil
	}
	names := make([]string, 0, len(All()))
	for _, known := range All() {
		names = append(names, string(known))
	}
	return "", errors.New(errors.CodePlatformUnknown, "unknown platform", map[string]any{
		"platform": s,
		"known":    names,
	})
}

// KeyName 返回该平台 secret 的属性名。
func (p Platform) KeyName() string {
	switch p {
	case Nostr, SSB:
		return "private_key"
	case Mastodon:
		return "access_token"
	case Bluesky:
		return "app_password"
	}
	return ""
}

// Service 返回平台的 secret service 标识（不含账号段）。
func (p Platform) Service() string {
	return servicePrefix + string(p)
}

func (p Platform) String() string { return string(p) }
