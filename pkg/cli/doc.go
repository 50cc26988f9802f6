// Package cli implements the command-line interface for kubesnap.
//
// # Overview
//
// kubesnap collects a diagnostic snapshot of a single Kubernetes namespace:
// resource listings, per-instance descriptions and structured YAML, pod
// container logs, namespace events, a consolidated error-log report, and an
// aggregate summary, written to a timestamped directory tree and optionally
// archived to a zip.
//
// # Commands
//
// snapshot - Capture a namespace snapshot:
//
//	kubesnap snapshot --namespace demo
//	kubesnap snapshot -n demo --custom-resources widgets,gadgets --zip
//	kubesnap snapshot -n demo --output /tmp/diag --concurrency 16
//	kubesnap snapshot --config snapshot.yaml
//
// The output tree is created as <namespace>_<timestamp>/ under the output
// directory:
//
//	get/<plural>/<plural>.txt        resource listing
//	get/<plural>/<name>.yaml         structured per-instance representation
//	describe/<singular>_<name>.txt   descriptive per-instance text
//	logs/<pod>/<container>.log       raw container log capture
//	events/events.txt                events in server order
//	events/events_by_timestamp.txt   events sorted by last occurrence
//	events/events.json               structured event records
//	error_summary.log                consolidated error-log excerpts
//	summary.txt                      aggregate counts
//
// With --zip a sibling <namespace>_<timestamp>.zip is produced, plus a
// standalone copy of the summary report next to it.
//
// # Configuration File
//
// The --config/-c flag reads defaults from a YAML file; individual flags
// override file values:
//
//	namespace: demo
//	customResources:
//	  - widgets
//	zip: true
//	concurrency: 16
//	tailLines: 10000
//
// # Global Flags
//
//	--debug      Enable debug logging
//	--log-json   Output logs in JSON format
//	--help, -h   Show command help
//	--version    Show version information
//
// # Exit Codes
//
// 0 on completion, including partial collection failures of individual
// resources; 1 on missing required input or invalid flags.
package cli
