//go:build windows

package log

func (s Severity) color() string {
	return ""
}

func endColor() string {
	return ""
}
