package terrain

// Biome tags a column with the surface ecosystem used for strata and
// decoration selection.
type Biome uint8

const (
	BiomePlains Biome = iota
	BiomeForest
	BiomeDesert
	BiomeOcean
	BiomeRiver
	BiomeMountains
)

func (b Biome) String() string {
	switch b {
	case BiomePlains:
		return "plains"
	case BiomeForest:
		return "forest"
	case BiomeDesert:
		return "desert"
	case BiomeOcean:
		return "ocean"
	case BiomeRiver:
		return "river"
	case BiomeMountains:
		return "mountains"
	default:
		return "unknown"
	}
}

// weightedBiomes weights the cellular pick by duplication; the nearest-point
// identity indexes into it modulo its length. Ocean is absent on purpose: it
// is only ever assigned by the waterline override.
var weightedBiomes = []Biome{
	BiomePlains,
	BiomePlains,
	BiomePlains,
	BiomePlains,
	BiomeForest,
	BiomeForest,
	BiomeForest,
	BiomeDesert,
	BiomeDesert,
	BiomeRiver,
	BiomeMountains,
	BiomeMountains,
}

// biomeSet is a bitmask over Biome values for candidate gating.
type biomeSet uint8

func biomes(bs ...Biome) biomeSet {
	var s biomeSet
	for _, b := range bs {
		s |= 1 << b
	}
	return s
}

func (s biomeSet) has(b Biome) bool {
	return s&(1<<b) != 0
}
