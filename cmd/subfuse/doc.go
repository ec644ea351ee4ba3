// Command subfuse fuses upstream media annotations (voice activity,
// diarization turns, ASR transcripts) into enriched segments and readable
// subtitle cues.
package main
