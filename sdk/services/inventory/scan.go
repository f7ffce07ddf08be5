// SPDX-FileCopyrightText: © 2025 Medical Artificial Intelligence Lab
//
// SPDX-License-Identifier: Apache-2.0

package inventory

import (
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
)

// Scan enumerates every file under root. A missing or unreadable root is
// fatal; a file that cannot be statted is logged and skipped.
func Scan(root string) ([]Asset, error) {
	if st, err := os.Stat(root); err != nil {
		return nil, fmt.Errorf("cannot access staging root %s: %w", root, err)
	} else if !st.IsDir() {
		return nil, fmt.Errorf("staging root %s is not a directory", root)
	}

	var assets []Asset
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if path == root {
				return walkErr
			}
			log.Printf("Skipping %s: %v\n", path, walkErr)
			return nil
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			log.Printf("Skipping %s: %v\n", path, err)
			return nil
		}
		stem, kind := splitName(d.Name())
		assets = append(assets, Asset{
			Path:      path,
			SizeBytes: info.Size(),
			Stem:      stem,
			Kind:      kind,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan of %s failed: %w", root, err)
	}
	return assets, nil
}
