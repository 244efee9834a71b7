// Package hmi implements the HMI node phase machine: the operator menu,
// digit entry and the door and lockout status screens.
package hmi
