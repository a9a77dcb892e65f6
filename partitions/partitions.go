// Package partitions models the AWS partitions file (sdk-partitions.json):
// the disjoint sets of regions that share DNS suffixes and capabilities,
// and the region-pattern matching used by the aws.partition rules-engine
// builtin and by the generated partitions.zz runtime module.
package partitions

import (
	"fmt"
	"regexp"

	json "github.com/goccy/go-json"
)

// Outputs is the per-partition metadata the aws.partition builtin returns:
// DNS suffixes, FIPS/dual-stack support, and the region implied when a
// client is configured with no explicit region.
type Outputs struct {
	DnsSuffix             string `json:"dnsSuffix"`
	DualStackDnsSuffix    string `json:"dualStackDnsSuffix"`
	SupportsFIPS          bool   `json:"supportsFIPS"`
	SupportsDualStack     bool   `json:"supportsDualStack"`
	ImplicitGlobalRegion  string `json:"implicitGlobalRegion"`
}

// Partition is one entry of the partitions file: an id ("aws", "aws-cn",
// "aws-us-gov", ...), its explicitly enumerated regions, a regex matching
// any region belonging to it even if not individually listed, and its
// Outputs.
type Partition struct {
	Id          string             `json:"id"`
	Regions     map[string]Outputs `json:"regions"`
	Outputs     Outputs            `json:"outputs"`
	RegionRegex string             `json:"regionRegex"`

	compiledRegex *regexp.Regexp
}

// File is the root document shape of sdk-partitions.json.
type File struct {
	Partitions []*Partition `json:"partitions"`
}

// Load parses raw partitions-file JSON bytes (a File is decoded directly
// since, unlike a Smithy model, the partitions file has no order-sensitive
// maps the generator needs to round-trip).
func Load(raw []byte) (*File, error) {
	var f File
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parsing partitions file: %w", err)
	}
	for _, p := range f.Partitions {
		if p.RegionRegex != "" {
			re, err := regexp.Compile(p.RegionRegex)
			if err != nil {
				return nil, fmt.Errorf("partition %s: invalid regionRegex %q: %w", p.Id, p.RegionRegex, err)
			}
			p.compiledRegex = re
		}
	}
	return &f, nil
}

// Resolve implements the aws.partition(region) rules-engine builtin: an
// exact region match wins, else the first partition whose regionRegex
// matches, else the file's first partition (conventionally "aws") with its
// partition-level outputs unchanged and ok=false, so an unrecognized
// region is treated as belonging to the default partition.
func (f *File) Resolve(region string) (*Partition, Outputs, bool) {
	for _, p := range f.Partitions {
		if o, ok := p.Regions[region]; ok {
			return p, mergeOutputs(p.Outputs, o), true
		}
	}
	for _, p := range f.Partitions {
		if p.compiledRegex != nil && p.compiledRegex.MatchString(region) {
			return p, p.Outputs, true
		}
	}
	if len(f.Partitions) > 0 {
		return f.Partitions[0], f.Partitions[0].Outputs, false
	}
	return nil, Outputs{}, false
}

// mergeOutputs lets a region's own outputs entry override individual
// fields of its partition's defaults; an empty field means "inherit".
func mergeOutputs(base, override Outputs) Outputs {
	merged := base
	if override.DnsSuffix != "" {
		merged.DnsSuffix = override.DnsSuffix
	}
	if override.DualStackDnsSuffix != "" {
		merged.DualStackDnsSuffix = override.DualStackDnsSuffix
	}
	if override.ImplicitGlobalRegion != "" {
		merged.ImplicitGlobalRegion = override.ImplicitGlobalRegion
	}
	merged.SupportsFIPS = base.SupportsFIPS || override.SupportsFIPS
	merged.SupportsDualStack = base.SupportsDualStack || override.SupportsDualStack
	return merged
}
