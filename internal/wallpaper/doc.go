// Package wallpaper manages the background catalog: six built-ins plus
// custom uploads listed by the actor, the persisted selection and uploads.
package wallpaper
