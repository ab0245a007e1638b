/*
Package ports defines the driven ports (interfaces) for experiment storage.

These interfaces decouple the renderers and transports from where experiment
definitions live, so the same engine works with the built-in catalog, a
directory of definition files or a Redis instance.

# Key Interfaces

  - ExperimentStore: read-only lookup of experiments by name (e.g., files on disk).
  - ExperimentRepository: an ExperimentStore that can also save and delete (memory, Redis).
  - Describer: optional, for stores that carry descriptions (catalog, files, Redis).
*/
package ports
