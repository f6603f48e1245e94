package qdrant

import (
	"hash/fnv"
	"math"
	"strings"
)

// hashedVector builds a fixed-size hashed term-frequency vector from text.
// Tokens are lowercased, hashed into dim buckets and the result is
// L2-normalized so cosine distance behaves sensibly.
func hashedVector(text string, dim int) []float32 {
	vec := make([]float32, dim)

	for _, token := range strings.Fields(strings.ToLower(text)) {
		token = strings.Trim(token, ".,;:!?\"'()[]{}")
		if token == "" {
			continue
		}
		h := fnv.New32a()
		_, _ = h.Write([]byte(token))
		vec[int(h.Sum32())%dim]++
	}

	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	if norm == 0 {
		// Zero vectors are rejected upstream; keep a deterministic non-zero
		// placeholder for records with no text.
		vec[0] = 1
		return vec
	}

	norm = math.Sqrt(norm)
	for i := range vec {
		vec[i] = float32(float64(vec[i]) / norm)
	}
	return vec
}
