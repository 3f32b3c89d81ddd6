// Package config turns manifest files on disk into a graph.Graph. It defines
// the Loader interface consumed by the app and a FileLoader that dispatches
// on file extension to the YAML-style and HCL decoders.
package config
