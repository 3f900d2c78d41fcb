// Package translit decodes response bodies at the edge of the bridge.
//
// Two modes exist. Strict mode (Decode) requires valid UTF-8 and fails with
// a utf8_decode_error otherwise. Transliteration mode (ToASCII) can never
// fail on encoding grounds: it guarantees pure ASCII output by replacing
// undecodable sequences with a fixed placeholder and folding known Turkish
// letters to English ones.
package translit
