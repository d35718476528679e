// Package assets decodes authored crafting data and resolves the soft
// references between assets.
//
// Assets are camelCase JSON documents discriminated by a "$type" field. A
// Registry reads raw documents from an assets repository, decodes them with
// the codec registered for their type, binds every soft reference they hold
// and caches the result.
package assets
