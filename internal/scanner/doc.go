// Package scanner walks user media folders and registers every media file
// with the audio or movie registry.
//
// Folders are walked depth first. Each folder may carry a config.yaml applied
// to everything below it, and each media file may carry a sibling <name>.yaml.
// Folder names also carry meaning:
//
//	Voices.acb/   files go to cues in the "Voices" bank
//	boss.cue/     files go to the "boss" cue
//	FILE.ryo/     the folder path below it names the audio file replaced
//
// A folder whose name has any extension groups its files into one container.
package scanner
