package merge

import (
	"path/filepath"
	"regexp"
	"strings"
)

var (
	pluralizedPattern = regexp.MustCompile(`pluralized_([a-zA-Z0-9-]+)\.csv`)
	industryPattern   = regexp.MustCompile(`_([a-zA-Z0-9-]+)(?:_[^_]+)?\.csv$`)
)

// ExtractIndustry pulls the industry token out of an input filename like
// pluralized_maschinenbau.csv or machine_report_maschinenbau_20250307.csv.
func ExtractIndustry(filename string) string {
	if m := pluralizedPattern.FindStringSubmatch(filename); m != nil {
		return m[1]
	}
	if m := industryPattern.FindStringSubmatch(filename); m != nil {
		return m[1]
	}
	return ""
}

// DeriveOutputPath names the export after the input's industry token,
// falling back to a generic name. The file lands in the working
// directory, matching how the exports are picked up downstream.
func DeriveOutputPath(inputCSVPath string) string {
	industry := ExtractIndustry(filepath.Base(inputCSVPath))
	if industry == "" {
		return "final_export_merged.csv"
	}
	return "final_export_" + industry + ".csv"
}

// EnsureCSVExtension appends ".csv" unless the path already ends in it.
func EnsureCSVExtension(path string) string {
	if strings.HasSuffix(strings.ToLower(path), ".csv") {
		return path
	}
	return path + ".csv"
}
