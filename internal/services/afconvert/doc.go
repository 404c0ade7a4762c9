// Package afconvert wraps the macOS afconvert tool used to derive an
// IMA4-compressed caf artifact from an exported aiff file.
//
// The conversion is a capability, not a requirement: hosts without the tool
// (every non-darwin platform) simply skip the derived artifact. A failing
// conversion on a host that has the tool is a real encode failure.
package afconvert
