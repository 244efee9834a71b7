// Package hmi runs the HMI node: the terminal panel and the HMI phase
// machine connected to the Control node.
package hmi
