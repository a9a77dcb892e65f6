package partitions

import (
	"bufio"
	"fmt"
	"io"
)

// Emit writes the generated partitions.zz runtime module: a literal table
// the aws.partition rules-engine builtin compiles down to, so generated
// clients never parse the partitions JSON file themselves at runtime.
func Emit(w io.Writer, f *File) error {
	bw := bufio.NewWriter(w)
	defer bw.Flush()

	fmt.Fprintln(bw, "// generated from sdk-partitions.json. Do not edit by hand.")
	fmt.Fprintln(bw, "module Partitions")
	fmt.Fprintln(bw)
	for _, p := range f.Partitions {
		fmt.Fprintf(bw, "partition %q {\n", p.Id)
		fmt.Fprintf(bw, "    region_regex = %q\n", p.RegionRegex)
		fmt.Fprintf(bw, "    dns_suffix = %q\n", p.Outputs.DnsSuffix)
		fmt.Fprintf(bw, "    dual_stack_dns_suffix = %q\n", p.Outputs.DualStackDnsSuffix)
		fmt.Fprintf(bw, "    supports_fips = %v\n", p.Outputs.SupportsFIPS)
		fmt.Fprintf(bw, "    supports_dual_stack = %v\n", p.Outputs.SupportsDualStack)
		fmt.Fprintf(bw, "    implicit_global_region = %q\n", p.Outputs.ImplicitGlobalRegion)
		for region, outputs := range p.Regions {
			fmt.Fprintf(bw, "    region %q { dns_suffix = %q }\n", region, outputs.DnsSuffix)
		}
		fmt.Fprintln(bw, "}")
		fmt.Fprintln(bw)
	}
	return bw.Flush()
}
