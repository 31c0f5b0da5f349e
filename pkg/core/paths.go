package core

import (
	"os"
	"path/filepath"
	"runtime"
)

// applicationDataDirectory returns the platform-specific Skyline data
// directory that holds HTTP configurations and certificates.
func applicationDataDirectory() string {
	if dir := os.Getenv("SYSTEMLINK_DATA_DIRECTORY"); dir != "" {
		return dir
	}

	if runtime.GOOS == "windows" {
		programData := os.Getenv("ProgramData")
		if programData == "" {
			programData = `C:\ProgramData`
		}
		return filepath.Join(programData, "National Instruments", "Skyline")
	}

	return filepath.Join("/etc", "natinst", "niskyline")
}

// saltDataDirectory returns the directory of the salt minion
// configuration installed by SystemLink Client.
func saltDataDirectory() string {
	if dir := os.Getenv("SYSTEMLINK_SALT_DIRECTORY"); dir != "" {
		return dir
	}

	if runtime.GOOS == "windows" {
		programData := os.Getenv("ProgramData")
		if programData == "" {
			programData = `C:\ProgramData`
		}
		return filepath.Join(programData, "National Instruments", "salt")
	}

	return filepath.Join("/etc", "natinst", "salt")
}
