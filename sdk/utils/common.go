// SPDX-FileCopyrightText: © 2025 Medical Artificial Intelligence Lab
//
// SPDX-License-Identifier: Apache-2.0

package utils

import (
	"fmt"
	"log"
	"os"
	"slices"

	"github.com/spf13/viper"
	"gopkg.in/ini.v1"
)

func getIniPath() string {
	iniPath, err := os.UserHomeDir()
	if err != nil {
		iniPath = "."
	}
	return iniPath + string(os.PathSeparator) + IniName
}

func LoadIni(createOnMissing bool) *ini.File {
	cfg, err := ini.Load(getIniPath())
	if err != nil {
		if !createOnMissing {
			log.Printf("Failed to read ini file: %v\n", err)
			os.Exit(1)
		}
		return ini.Empty()
	}
	return cfg
}

func SaveIni(cfg *ini.File) {
	if err := cfg.SaveTo(getIniPath()); err != nil {
		log.Printf("Failed to update ini file: %v\n", err)
		os.Exit(1)
	}
}

// TranslateModality maps a user-supplied modality token ("t1", "fmri", ...)
// to the canonical token the server expects. Empty string if unsupported.
func TranslateModality(token string) string {
	for key, aliases := range Modalities {
		if key == token || slices.Contains(aliases, token) {
			return key
		}
	}
	return ""
}

// PersistConfigValue sets key in the active viper environment and writes it
// through to the matching section of the ini file.
func PersistConfigValue(key, value string) {
	viper.Set(key, value)

	cfg := LoadIni(true)
	env := viper.GetString(CurrentEnvironment)
	if env == "" {
		env = "default"
	}
	cfg.Section(env).Key(key).SetValue(value)
	SaveIni(cfg)
}

// PollInterval / MaxAttempts resolved from viper with sane fallbacks.
func PollIntervalSeconds() int {
	if v := viper.GetInt(PollIntervalSec); v > 0 {
		return v
	}
	return 10
}

func MaxAttempts() int {
	if v := viper.GetInt(MaxPollAttempts); v > 0 {
		return v
	}
	return 120
}

/* ------------ logging helpers (stderr) ------------ */

func Infof(format string, a ...any) {
	fmt.Fprintf(os.Stderr, "[INFO] "+format+"\n", a...)
}

func Warnf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, "[WARN] "+format+"\n", a...)
}
