package block

import (
	"fmt"

	"github.com/voxelforge/worldgen/internal/logging"
)

// DefaultVersion is the block naming version used when a config does not
// override it.
const DefaultVersion = "1.20"

// Block describes one registered block: a stable numeric ID plus the name it
// carries under the resolved version.
type Block struct {
	ID   uint16
	Name string
	Meta uint8
}

// State packs the block into the chunk's voxel encoding, id<<4 | meta.
func (b Block) State() uint16 {
	return b.ID<<4 | uint16(b.Meta)
}

// TypeID extracts the block type from a packed voxel state.
func TypeID(state uint16) uint16 {
	return state >> 4
}

// Registry resolves block names to descriptors, including names that were
// renamed between versions. Lookups are read-only after construction.
type Registry struct {
	byName map[string]Block
	// renames maps version → canonical name → that version's name.
	renames map[string]map[string]string
	// legacy maps any historical name back to its canonical entry.
	legacy map[string]string
}

// NewRegistry builds the registry with the block set the generator needs.
func NewRegistry() *Registry {
	r := &Registry{
		byName:  make(map[string]Block),
		renames: make(map[string]map[string]string),
		legacy:  make(map[string]string),
	}

	for _, b := range []Block{
		{ID: 0, Name: "air"},
		{ID: 1, Name: "stone"},
		{ID: 2, Name: "grass_block"},
		{ID: 3, Name: "dirt"},
		{ID: 7, Name: "bedrock"},
		{ID: 9, Name: "water"},
		{ID: 12, Name: "sand"},
		{ID: 15, Name: "iron_ore"},
		{ID: 16, Name: "coal_ore"},
		{ID: 17, Name: "oak_log"},
		{ID: 18, Name: "oak_leaves"},
		{ID: 24, Name: "sandstone"},
		{ID: 31, Name: "short_grass"},
		{ID: 32, Name: "dead_bush"},
		{ID: 37, Name: "dandelion"},
		{ID: 56, Name: "diamond_ore"},
		{ID: 73, Name: "redstone_ore"},
		{ID: 81, Name: "cactus"},
		{ID: 83, Name: "sugar_cane"},
		{ID: 175, Name: "tall_grass", Meta: 0},
		{ID: 175, Name: "tall_grass_top", Meta: 8},
	} {
		r.byName[b.Name] = b
	}

	// Name changes across versions. Canonical names follow the newest
	// naming; older target versions resolve to their contemporary name.
	r.addRename("1.12", "grass_block", "grass")
	r.addRename("1.12", "short_grass", "tallgrass")
	r.addRename("1.12", "dead_bush", "deadbush")
	r.addRename("1.12", "sugar_cane", "reeds")
	r.addRename("1.13", "short_grass", "grass")
	r.addRename("1.16", "short_grass", "grass")

	logging.GetLogger().Debug("Block registry initialized", "blocks", len(r.byName))
	return r
}

func (r *Registry) addRename(version, canonical, versioned string) {
	vmap, ok := r.renames[version]
	if !ok {
		vmap = make(map[string]string)
		r.renames[version] = vmap
	}
	vmap[canonical] = versioned
	r.legacy[versioned] = canonical
}

// Resolve looks up a block by name for the given target version. Both
// canonical and historical names are accepted; the returned descriptor
// carries the target version's name. An unknown name is a configuration
// error.
func (r *Registry) Resolve(name, version string) (Block, error) {
	canonical := name
	if c, ok := r.legacy[name]; ok {
		canonical = c
	}

	b, ok := r.byName[canonical]
	if !ok {
		return Block{}, fmt.Errorf("unknown block %q for version %q", name, version)
	}

	if vmap, ok := r.renames[version]; ok {
		if vn, ok := vmap[canonical]; ok {
			b.Name = vn
		}
	}
	return b, nil
}
