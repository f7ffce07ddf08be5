// SPDX-FileCopyrightText: © 2025 Medical Artificial Intelligence Lab
//
// SPDX-License-Identifier: Apache-2.0

package inventory

import "sort"

// Group partitions assets into per-stem series groups. Groups without an
// image are dropped: a sidecar with no pixel data carries no acquisition
// to classify. Within a group the retained primary is the largest image;
// ties break to the lexicographically first path. This guards against
// picking a scout/thumbnail that shares a stem with the diagnostic volume.
// Output is sorted by stem so repeated runs see the same order.
func Group(assets []Asset) []SeriesGroup {
	byStem := make(map[string][]Asset)
	for _, a := range assets {
		if a.Kind == KindOther {
			continue
		}
		byStem[a.Stem] = append(byStem[a.Stem], a)
	}

	stems := make([]string, 0, len(byStem))
	for stem := range byStem {
		stems = append(stems, stem)
	}
	sort.Strings(stems)

	var groups []SeriesGroup
	for _, stem := range stems {
		var images, sidecars []Asset
		for _, a := range byStem[stem] {
			if a.Kind == KindImage {
				images = append(images, a)
			} else {
				sidecars = append(sidecars, a)
			}
		}
		if len(images) == 0 {
			continue
		}

		primary := images[0]
		for _, img := range images[1:] {
			if img.SizeBytes > primary.SizeBytes ||
				(img.SizeBytes == primary.SizeBytes && img.Path < primary.Path) {
				primary = img
			}
		}

		var discarded []Asset
		for _, img := range images {
			if img.Path != primary.Path {
				discarded = append(discarded, img)
			}
		}

		groups = append(groups, SeriesGroup{
			Stem:      stem,
			Primary:   primary,
			Discarded: discarded,
			Sidecars:  sidecars,
		})
	}
	return groups
}
