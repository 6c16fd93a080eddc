// Package viewserver pushes a killweb and its latest results to browser
// clients over socket.io and answers component inspection requests.
//
// Events emitted by the server:
//
//	graph          the graph.View of the killweb, on connect and on Publish
//	results        leaderboard and centrality, once a run has finished
//	component      reply to "inspect" with the selected component's detail
//	inspect_error  reply to "inspect" when the component does not exist
//
// Clients request detail by emitting "inspect" with a component name. The
// same mux serves a plain-text /health endpoint.
package viewserver
