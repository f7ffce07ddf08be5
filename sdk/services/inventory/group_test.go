// SPDX-FileCopyrightText: © 2025 Medical Artificial Intelligence Lab
//
// SPDX-License-Identifier: Apache-2.0

package inventory_test

import (
	"path/filepath"
	"testing"

	"github.com/mailab-io/webqc-cli-sdk/sdk/services/inventory"
)

func asset(path, stem string, kind inventory.Kind, size int64) inventory.Asset {
	return inventory.Asset{Path: path, Stem: stem, Kind: kind, SizeBytes: size}
}

func TestGroupLargestImageWins(t *testing.T) {
	groups := inventory.Group([]inventory.Asset{
		asset("/tmp/series1.nii", "series1", inventory.KindImage, 500),
		asset("/tmp/series1.nii.gz", "series1", inventory.KindImage, 50000),
		asset("/tmp/series1.json", "series1", inventory.KindJSON, 10),
	})
	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(groups))
	}
	g := groups[0]
	if filepath.Base(g.Primary.Path) != "series1.nii.gz" {
		t.Fatalf("expected largest image as primary, got %q", g.Primary.Path)
	}
	if len(g.Discarded) != 1 || filepath.Base(g.Discarded[0].Path) != "series1.nii" {
		t.Fatalf("expected smaller image discarded, got %+v", g.Discarded)
	}
	sc, ok := g.JSONSidecar()
	if !ok || filepath.Base(sc.Path) != "series1.json" {
		t.Fatalf("expected json sidecar, got %+v", sc)
	}
}

func TestGroupTieBreaksOnPath(t *testing.T) {
	groups := inventory.Group([]inventory.Asset{
		asset("/tmp/b/series1.nii", "series1", inventory.KindImage, 500),
		asset("/tmp/a/series1.nii", "series1", inventory.KindImage, 500),
	})
	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(groups))
	}
	if groups[0].Primary.Path != "/tmp/a/series1.nii" {
		t.Fatalf("expected lexicographically smaller path on size tie, got %q", groups[0].Primary.Path)
	}
}

func TestGroupDropsImagelessGroups(t *testing.T) {
	groups := inventory.Group([]inventory.Asset{
		asset("/tmp/orphan.json", "orphan", inventory.KindJSON, 10),
		asset("/tmp/notes.txt", "notes", inventory.KindOther, 1),
		asset("/tmp/scan.nii", "scan", inventory.KindImage, 100),
	})
	if len(groups) != 1 {
		t.Fatalf("expected orphan sidecars dropped, got %d groups", len(groups))
	}
	if groups[0].Stem != "scan" {
		t.Fatalf("unexpected surviving group %q", groups[0].Stem)
	}
}

func TestGroupOrderIsDeterministic(t *testing.T) {
	in := []inventory.Asset{
		asset("/tmp/zeta.nii", "zeta", inventory.KindImage, 1),
		asset("/tmp/alpha.nii", "alpha", inventory.KindImage, 1),
		asset("/tmp/mid.nii", "mid", inventory.KindImage, 1),
	}
	groups := inventory.Group(in)
	want := []string{"alpha", "mid", "zeta"}
	for i, w := range want {
		if groups[i].Stem != w {
			t.Fatalf("expected stem %q at %d, got %q", w, i, groups[i].Stem)
		}
	}
}
