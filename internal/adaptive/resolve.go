package adaptive

// ResolveVariant picks the variant a student with the given disability type
// should read. The dispatcher invariant guarantees every category key exists;
// if the resolved one is somehow missing, the general entry is the fallback.
func ResolveVariant(agg *Aggregate, disabilityType string) Variant {
	if agg == nil || len(agg.AdaptiveVersions) == 0 {
		return nil
	}
	if v, ok := agg.AdaptiveVersions[ResolveCategory(disabilityType)]; ok {
		return v
	}
	return agg.AdaptiveVersions[CategoryGeneral]
}
