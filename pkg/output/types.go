package output

import "encoding/xml"

// CheckResult is the structured form of one outdated check run.
//
// Fields:
//   - XMLName: XML root element name (used only for XML marshaling)
//   - Summary: Aggregate counts and elapsed time
//   - Packages: One entry per checked package, in pipx listing order
//   - Errors: Failure messages collected during the run (omitted if empty)
type CheckResult struct {
	XMLName  xml.Name       `json:"-" yaml:"-" xml:"checkResult"`
	Summary  CheckSummary   `json:"summary" yaml:"summary" xml:"summary"`
	Packages []PackageEntry `json:"packages" yaml:"packages" xml:"packages>package"`
	Errors   []string       `json:"errors,omitempty" yaml:"errors,omitempty" xml:"errors>error,omitempty"`
}

// CheckSummary holds summary statistics for a check run.
//
// Fields:
//   - TotalPackages: Number of top-level packages found by pipx list
//   - Checked: Number of packages whose check finished
//   - Outdated: Packages with a newer version available
//   - UpToDate: Packages with no matching outdated row
//   - Failed: Packages whose check failed
//   - ElapsedSeconds: Wall-clock time of the whole run
type CheckSummary struct {
	TotalPackages  int     `json:"total_packages" yaml:"total_packages" xml:"totalPackages"`
	Checked        int     `json:"checked" yaml:"checked" xml:"checked"`
	Outdated       int     `json:"outdated" yaml:"outdated" xml:"outdated"`
	UpToDate       int     `json:"up_to_date" yaml:"up_to_date" xml:"upToDate"`
	Failed         int     `json:"failed" yaml:"failed" xml:"failed"`
	ElapsedSeconds float64 `json:"elapsed_seconds" yaml:"elapsed_seconds" xml:"elapsedSeconds"`
}

// PackageEntry is one checked package.
//
// Fields:
//   - Package: Top-level package name from pipx list
//   - Status: UpToDate, Outdated or CheckFailed
//   - Distribution: Name in the matched pip row (may differ under substring matching)
//   - Current: Installed version (empty unless Outdated)
//   - Latest: Latest available version (empty unless Outdated)
//   - Kind: Distribution kind reported by pip, e.g. "wheel"
//   - UpdateType: major, minor, patch, prerelease or unknown
//   - Error: Failure message (empty unless CheckFailed)
type PackageEntry struct {
	Package      string `json:"package" yaml:"package" xml:"package"`
	Status       string `json:"status" yaml:"status" xml:"status"`
	Distribution string `json:"distribution,omitempty" yaml:"distribution,omitempty" xml:"distribution,omitempty"`
	Current      string `json:"current,omitempty" yaml:"current,omitempty" xml:"current,omitempty"`
	Latest       string `json:"latest,omitempty" yaml:"latest,omitempty" xml:"latest,omitempty"`
	Kind         string `json:"kind,omitempty" yaml:"kind,omitempty" xml:"kind,omitempty"`
	UpdateType   string `json:"update_type,omitempty" yaml:"update_type,omitempty" xml:"updateType,omitempty"`
	Error        string `json:"error,omitempty" yaml:"error,omitempty" xml:"error,omitempty"`
}
