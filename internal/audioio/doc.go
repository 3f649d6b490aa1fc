// Package audioio reads audio files into per-channel float64 slices and
// writes rendered clips back out as PCM WAV.
//
// WAV and AIFF are decoded through go-audio, MP3 through go-mp3 and Ogg
// Vorbis through oggvorbis. Only the command line tools use this package;
// the effect units never touch files.
package audioio
