package main

// webUIHTML is the embedded web interface HTML
const webUIHTML = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Compound Interest Visualizer</title>
    <style>
        :root {
            --primary: #2563eb;
            --primary-dark: #1d4ed8;
            --success: #16a34a;
            --danger: #dc2626;
            --bg: #f1f5f9;
            --card-bg: #ffffff;
            --text: #1e293b;
            --text-muted: #64748b;
            --border: #e2e8f0;
        }
        * { box-sizing: border-box; margin: 0; padding: 0; }
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
            background: var(--bg);
            color: var(--text);
            padding: 10px;
        }
        .card {
            background: var(--card-bg);
            border: 1px solid var(--border);
            border-radius: 8px;
            padding: 10px;
            margin-bottom: 10px;
        }
        #chart { position: relative; }
        #chart svg { max-width: 100%; height: auto; display: block; margin: 0 auto; }
        #tooltip {
            position: absolute;
            display: none;
            pointer-events: none;
            background: rgba(15, 23, 42, 0.9);
            color: #fff;
            font-size: 12px;
            padding: 6px 8px;
            border-radius: 4px;
            white-space: nowrap;
            z-index: 10;
        }
        #tooltip.pinned { border: 1px solid #facc15; }
        #marker {
            position: absolute;
            display: none;
            width: 10px; height: 10px;
            margin: -5px 0 0 -5px;
            border: 2px solid #0f172a;
            border-radius: 50%;
            pointer-events: none;
        }
        .panel {
            display: flex;
            flex-wrap: wrap;
            align-items: center;
            gap: 6px;
            padding: 6px 0;
            border-top: 1px solid var(--border);
        }
        .panel:first-child { border-top: none; }
        .panel label { font-size: 13px; color: var(--text-muted); }
        .panel input {
            width: 90px;
            padding: 4px 6px;
            border: 1px solid var(--border);
            border-radius: 4px;
            font-size: 13px;
        }
        .panel input.invalid { border-color: var(--danger); background: #fef2f2; }
        .panel .swatch { width: 12px; height: 12px; border-radius: 2px; }
        .panel .error { color: var(--danger); font-size: 12px; flex-basis: 100%; }
        button {
            padding: 4px 10px;
            border: none;
            border-radius: 4px;
            color: #fff;
            background: var(--primary);
            cursor: pointer;
            font-size: 13px;
        }
        button:hover { background: var(--primary-dark); }
        button.rm { background: var(--danger); }
        button.add { background: var(--success); }
        .actions { display: flex; justify-content: flex-end; }
        #status { color: var(--danger); font-size: 13px; margin-right: auto; }
    </style>
</head>
<body>
    <div class="card">
        <div id="chart"><div id="marker"></div><div id="tooltip"></div></div>
    </div>
    <div class="card" id="panels"></div>
    <div class="actions">
        <span id="status"></span>
        <button class="add" id="add">Add plot input section</button>
    </div>
    <script>
        const FIELDS = [
            ['initial', 'Initial:'],
            ['yearly', 'Yearly:'],
            ['annual_return', 'Annual %:'],
            ['age_started', 'Age Started:'],
            ['max_age', 'Max Age:'],
        ];
        let chart = null;
        let chartVersion = -1;
        let pinned = null;

        async function call(method, url, body) {
            const opts = { method: method, headers: {} };
            if (body !== undefined) {
                opts.headers['Content-Type'] = 'application/json';
                opts.body = JSON.stringify(body);
            }
            try {
                const res = await fetch(url, opts);
                const data = await res.json();
                setStatus(data.view ? '' : (data.error || ''));
                return data;
            } catch (err) {
                setStatus('Request failed: ' + err);
                return null;
            }
        }

        function setStatus(msg) {
            document.getElementById('status').textContent = msg;
        }

        async function addPanel() {
            const data = await call('POST', '/api/scenarios');
            if (data && data.view) render(data.view, null);
        }

        async function updatePanel(id) {
            const row = document.getElementById('panel-' + id);
            const fields = {};
            FIELDS.forEach(([name]) => { fields[name] = row.querySelector('[name=' + name + ']').value; });
            const data = await call('PUT', '/api/scenarios/' + id, fields);
            if (data && data.view) render(data.view, id);
        }

        async function removePanel(id) {
            const data = await call('DELETE', '/api/scenarios/' + id);
            if (data && data.view) render(data.view, null);
        }

        function buildRow(p) {
            const row = document.createElement('div');
            row.className = 'panel';
            row.id = 'panel-' + p.id;
            const swatch = document.createElement('span');
            swatch.className = 'swatch';
            row.appendChild(swatch);
            FIELDS.forEach(([name, caption]) => {
                const label = document.createElement('label');
                label.textContent = caption;
                const input = document.createElement('input');
                input.name = name;
                input.addEventListener('keydown', (e) => { if (e.key === 'Enter') updatePanel(p.id); });
                label.appendChild(input);
                row.appendChild(label);
            });
            const rm = document.createElement('button');
            rm.className = 'rm';
            rm.textContent = 'rm';
            rm.onclick = () => removePanel(p.id);
            row.appendChild(rm);
            const upd = document.createElement('button');
            upd.textContent = 'Update';
            upd.onclick = () => updatePanel(p.id);
            row.appendChild(upd);
            const err = document.createElement('div');
            err.className = 'error';
            row.appendChild(err);
            fillRow(row, p);
            return row;
        }

        function fillRow(row, p) {
            FIELDS.forEach(([name]) => { row.querySelector('[name=' + name + ']').value = p.fields[name]; });
        }

        // render keeps unsaved text in panels other than the one just acted on
        function render(view, touched) {
            const container = document.getElementById('panels');
            const keep = new Set(view.panels.map(p => p.id));
            Array.from(container.children).forEach(row => {
                if (!keep.has(row.id.slice('panel-'.length))) row.remove();
            });
            const colors = {};
            (view.chart.series || []).forEach(s => { colors[s.key] = s.color; });
            view.panels.forEach(p => {
                let row = document.getElementById('panel-' + p.id);
                if (!row) {
                    row = buildRow(p);
                } else if (p.id === touched) {
                    fillRow(row, p);
                }
                container.appendChild(row);
                row.querySelector('.swatch').style.background = colors[p.id] || 'transparent';
                row.querySelector('.error').textContent = p.error || '';
                FIELDS.forEach(([name]) => {
                    row.querySelector('[name=' + name + ']').classList.toggle('invalid', !!p.error && p.error_field === name);
                });
            });
            renderChart(view.chart);
        }

        async function renderChart(snapshot) {
            if (snapshot.version === chartVersion) return;
            chartVersion = snapshot.version;
            chart = snapshot;
            unpin();
            const res = await fetch('/api/chart.svg?v=' + snapshot.version);
            const svg = await res.text();
            const host = document.getElementById('chart');
            const old = host.querySelector('svg');
            if (old) old.remove();
            host.insertAdjacentHTML('afterbegin', svg);
        }

        function nearestHit(evt) {
            if (!chart || !chart.inspectable || !chart.hits) return null;
            const svg = document.querySelector('#chart svg');
            if (!svg) return null;
            const rect = svg.getBoundingClientRect();
            const scale = rect.width / chart.width;
            const mx = (evt.clientX - rect.left) / scale;
            const my = (evt.clientY - rect.top) / scale;
            let best = null, bestD = 12 * 12;
            chart.hits.forEach(h => {
                const d = (h.x - mx) * (h.x - mx) + (h.y - my) * (h.y - my);
                if (d < bestD) { bestD = d; best = h; }
            });
            return best;
        }

        function showHit(h) {
            const tip = document.getElementById('tooltip');
            const marker = document.getElementById('marker');
            if (!h) { tip.style.display = 'none'; marker.style.display = 'none'; return; }
            const svg = document.querySelector('#chart svg');
            const host = document.getElementById('chart').getBoundingClientRect();
            const rect = svg.getBoundingClientRect();
            const scale = rect.width / chart.width;
            const x = rect.left - host.left + h.x * scale;
            const y = rect.top - host.top + h.y * scale;
            tip.innerHTML = '';
            [ 'Age ' + h.age, 'Value ' + h.display, h.label ].forEach(line => {
                const div = document.createElement('div');
                div.textContent = line;
                tip.appendChild(div);
            });
            tip.style.left = (x + 10) + 'px';
            tip.style.top = (y + 10) + 'px';
            tip.style.display = 'block';
            marker.style.left = x + 'px';
            marker.style.top = y + 'px';
            marker.style.borderColor = (chart.series[h.series] || {}).color || '#0f172a';
            marker.style.display = 'block';
        }

        function unpin() {
            pinned = null;
            document.getElementById('tooltip').classList.remove('pinned');
            showHit(null);
        }

        const chartHost = document.getElementById('chart');
        chartHost.addEventListener('mousemove', (e) => { if (!pinned) showHit(nearestHit(e)); });
        chartHost.addEventListener('mouseleave', () => { if (!pinned) showHit(null); });
        chartHost.addEventListener('click', (e) => {
            const h = nearestHit(e);
            if (!h || pinned === h) { unpin(); return; }
            pinned = h;
            document.getElementById('tooltip').classList.add('pinned');
            showHit(h);
        });
        document.getElementById('add').onclick = addPanel;

        call('GET', '/api/view').then(data => { if (data && data.view) render(data.view, null); });
    </script>
</body>
</html>
`
