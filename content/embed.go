// Package content embeds the Vestige reference tables shipped with the creator.
package content

import "embed"

// FS holds attributes, benefits, burdens, skills, resource tiers, professions and upbringings.
//
//go:embed *.yaml professions/*.yaml upbringings/*.yaml
var FS embed.FS
