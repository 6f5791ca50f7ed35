// Package policy defines the pure ordering policies of the ready set:
// shortest-remaining-work and ascending-priority comparisons. The third
// tier keeps plain insertion order and needs no policy.
package policy
