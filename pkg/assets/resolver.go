package assets

// Resolver turns a source asset name into its servable URL path.
type Resolver interface {
	// Asset resolves a source asset path to its full URL path,
	// including any configured prefix and fingerprinted filename.
	Asset(source string) string
}

type manifestResolver struct {
	manifest *Manifest
	prefix   string
}

// NewResolver creates a Resolver from a Manifest with an optional path
// prefix prepended to every resolved path.
//
//	manifest, _ := assets.Load("dist/manifest.json")
//	resolver := assets.NewResolver(manifest, "/public/")
//	resolver.Asset("loom.js") // "/public/loom.a1b2c3d4.min.js"
func NewResolver(m *Manifest, prefix string) Resolver {
	return &manifestResolver{
		manifest: m,
		prefix:   prefix,
	}
}

func (r *manifestResolver) Asset(source string) string {
	return r.prefix + r.manifest.Resolve(source)
}

type passthrough struct {
	prefix string
}

// NewPassthroughResolver creates a resolver that returns paths unchanged
// apart from the prefix. Use in development where fingerprinting is
// disabled, keeping dev and prod paths consistent.
func NewPassthroughResolver(prefix string) Resolver {
	return &passthrough{prefix: prefix}
}

func (p *passthrough) Asset(source string) string {
	return p.prefix + source
}
