/*
Package layout computes diagram geometry for experiments.

Two layouts are supported:

  - Area: a unit square split into one horizontal band per first-level
    happening and each band into one cell per follow-up happening. Areas are
    proportional to joint probabilities. Limited to two levels.
  - Tree: a branching diagram whose geometry depends only on depth and sibling
    position. Leaves carry the cumulative probability of their path.

Layouts are plain data. Turning them into markup is the job of package markup.
Coordinates are exact fractions; Coord rounds them for output only.
*/
package layout
