/*
Package config loads the optional repren configuration file.

	            +-------------+
	            |   Config    |
	            | (Settings)  |
	            +------+------+
	                   |
	      +-----------+-----------+-----------+
	      |           |                       |
	+-----+-----+ +---+-----+           +-----+----+
	|   YAML    | |   HCL   |           |   JSON   |
	| Parser    | | Parser  |           |  Parser  |
	+-----------+ +---------+           +----------+

Parsers register themselves by file extension. Discover looks for
.reprenrc.yaml, .reprenrc.yml, .reprenrc.hcl and .reprenrc.json in that
order. Command line flags override whatever the file sets.

🔍 Example (YAML):

	patterns:
	  - from: foo
	    to: bar
	pattern_file: patterns.tsv
	flags:
	  word_breaks: true
	mode: full
	exclude: [".*", "vendor"]

🔍 Example (HCL):

	pattern {
	  from = "foo"
	  to   = "bar"
	}
	flags {
	  preserve_case = true
	}
	backup_suffix = "${default_backup_suffix}.1"

A relative pattern_file is resolved against the directory of the config
file.
*/
package config
