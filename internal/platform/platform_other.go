//go:build !linux && !darwin && !windows

package platform

func Detect() Info {
	return baseInfo()
}
