// Package config handles configuration management for ownerswap.
//
// Configuration is layered with koanf, later sources overriding earlier ones:
//
//  1. embedded defaults (embedded/defaults.toml)
//  2. .ownerswap.toml or ownerswap.toml in the search directory, or an
//     explicit --config file
//  3. OWNERSWAP_<SECTION>_<KEY> environment variables
//     (OWNERSWAP_GITHUB_BASE_URL sets github.base_url)
//  4. overrides from command-line flags
//
// GITHUB_TOKEN is used when github.token is still empty after all layers.
package config
