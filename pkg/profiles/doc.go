// Package profiles loads profile directories into descriptors.
//
// A profile directory holds an optional manifest (profile.json,
// profile.yml, profile.yaml or profile.toml), a home/ tree overlaid onto
// the user's home, an optional templates/home/ tree, an optional
// variables.json and any assets the manifest refers to, such as a
// wallpaper image or a startup script.
//
// Discovery scans the profiles root on every call; descriptors are never
// cached or persisted.
package profiles
