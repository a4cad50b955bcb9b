// Package plans is the static catalog of service tiers and their monthly
// send ceilings. Every plan value an account row can hold resolves to a
// catalog entry; unknown values fall back to the most restrictive tier.
package plans
