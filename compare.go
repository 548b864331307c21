package readerview

// ContentDiffers reports whether a reference extraction disagrees
// significantly with a native one: one side is empty while the other is
// not, or either side is more than 50% longer than the other. A nil article
// counts as empty.
func ContentDiffers(native, reference *Article) bool {
	nativeLen := articleLength(native)
	referenceLen := articleLength(reference)

	if nativeLen == 0 || referenceLen == 0 {
		return nativeLen != referenceLen
	}

	return float64(referenceLen) > float64(nativeLen)*1.5 ||
		float64(nativeLen) > float64(referenceLen)*1.5
}

func articleLength(a *Article) int {
	if a == nil {
		return 0
	}
	return a.Length
}
